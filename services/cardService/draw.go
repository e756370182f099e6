// Package cardService renders the 800x400 transaction cards attached to
// signing, release, and transfer announcements.
package cardService

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	cardWidth  = 800
	cardHeight = 400

	avatarSize = 200
	avatarX    = 300
	avatarY    = 50

	overlayTop   = 240
	overlayAlpha = 160
)

// Neutral fill used when a team role has no color (pure black).
var neutralFill = [3]int{44, 47, 51}

var (
	defaultBackgroundFile = "default_card.jpg"
	fontFile              = "font.ttf"
)

// Both outbound fetches (background, avatar) are bounded by this client;
// there is no retry.
var httpClient = &http.Client{Timeout: 10 * time.Second}

// Configure overrides the default asset paths from the environment.
func Configure(backgroundFile, font string) {
	if backgroundFile != "" {
		defaultBackgroundFile = backgroundFile
	}
	if font != "" {
		fontFile = font
	}
}

type CardRequest struct {
	PlayerName    string
	AvatarURL     string
	Title         string
	TeamColor     int    // 0xRRGGBB role color
	BackgroundURL string // optional custom background
}

// Render produces the PNG card. Network failures never fail the render; they
// fall through to the next background option or skip the avatar.
func Render(req CardRequest) ([]byte, error) {
	dc := gg.NewContext(cardWidth, cardHeight)

	drawBackground(dc, req)
	drawAvatar(dc, req.AvatarURL)
	drawText(dc, req)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding card: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBackground falls through custom URL -> local default file -> solid team
// color.
func drawBackground(dc *gg.Context, req CardRequest) {
	if req.BackgroundURL != "" {
		if img, err := fetchImage(req.BackgroundURL); err == nil {
			dc.DrawImage(scaleTo(img, cardWidth, cardHeight), 0, 0)
			// Darken the text band so the lines stay readable.
			dc.SetRGBA255(0, 0, 0, overlayAlpha)
			dc.DrawRectangle(0, overlayTop, cardWidth, cardHeight-overlayTop)
			dc.Fill()
			return
		}
	}

	if img, err := gg.LoadImage(defaultBackgroundFile); err == nil {
		dc.DrawImage(scaleTo(img, cardWidth, cardHeight), 0, 0)
		return
	}

	r, g, b := fallbackFill(req.TeamColor)
	dc.SetRGB255(r, g, b)
	dc.Clear()
}

// fallbackFill splits the role color, substituting a neutral grey for pure
// black (the color Discord reports for colorless roles).
func fallbackFill(teamColor int) (int, int, int) {
	r := (teamColor >> 16) & 0xff
	g := (teamColor >> 8) & 0xff
	b := teamColor & 0xff
	if r == 0 && g == 0 && b == 0 {
		return neutralFill[0], neutralFill[1], neutralFill[2]
	}
	return r, g, b
}

func drawAvatar(dc *gg.Context, avatarURL string) {
	if avatarURL == "" {
		return
	}
	img, err := fetchImage(avatarURL)
	if err != nil {
		return
	}
	avatar := scaleTo(img, avatarSize, avatarSize)

	cx := float64(avatarX + avatarSize/2)
	cy := float64(avatarY + avatarSize/2)
	radius := float64(avatarSize / 2)

	dc.DrawCircle(cx, cy, radius)
	dc.Clip()
	dc.DrawImage(avatar, avatarX, avatarY)
	dc.ResetClip()

	dc.SetColor(color.White)
	dc.SetLineWidth(3)
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()
}

func drawText(dc *gg.Context, req CardRequest) {
	dc.SetColor(color.White)

	dc.SetFontFace(loadFace(40))
	dc.DrawStringAnchored(req.Title, cardWidth/2, 290, 0.5, 0.5)

	dc.SetFontFace(loadFace(60))
	dc.DrawStringAnchored(strings.ToUpper(req.PlayerName), cardWidth/2, 350, 0.5, 0.5)
}

func loadFace(points float64) font.Face {
	face, err := gg.LoadFontFace(fontFile, points)
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

func fetchImage(url string) (image.Image, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching image: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	return img, err
}

func scaleTo(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

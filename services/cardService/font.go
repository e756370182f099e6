package cardService

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
)

const fontURL = "https://github.com/google/fonts/raw/main/apache/roboto/Roboto-Bold.ttf"

// EnsureFont downloads the card font on first run. A failed download is not
// fatal; the renderer falls back to the built-in face.
func EnsureFont() error {
	if _, err := os.Stat(fontFile); err == nil {
		return nil
	}

	log.Info().Str("path", fontFile).Msg("card font missing, downloading")

	resp, err := httpClient.Get(fontURL)
	if err != nil {
		return fmt.Errorf("downloading font: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading font: status %d", resp.StatusCode)
	}

	out, err := os.Create(fontFile)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing font file: %w", err)
	}
	return nil
}

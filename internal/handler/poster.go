package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/circa/reservations/internal/hero"
	"github.com/circa/reservations/internal/metrics"
)

// Poster bounds. Larger images are refused rather than rendered slowly.
const (
	defaultPosterWidth  = 1200
	defaultPosterHeight = 600
	defaultPosterFrames = 24
	maxPosterWidth      = 1920
	maxPosterHeight     = 1080
	maxPosterFrames     = 48
	minPosterSide       = 16
)

// PosterHandler renders still frames of the hero animation as PNG. It backs
// the page's <noscript> image and social previews.
type PosterHandler struct {
	Config hero.Config
}

func NewPosterHandler(cfg hero.Config) *PosterHandler { return &PosterHandler{Config: cfg} }

// Render handles GET /hero/poster.png?w=&h=&seed=&frames=.
func (h *PosterHandler) Render(c echo.Context) error {
	w, err := queryInt(c, "w", defaultPosterWidth, minPosterSide, maxPosterWidth)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid w"})
	}
	ht, err := queryInt(c, "h", defaultPosterHeight, minPosterSide, maxPosterHeight)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid h"})
	}
	frames, err := queryInt(c, "frames", defaultPosterFrames, 1, maxPosterFrames)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid frames"})
	}
	seed := uint64(1)
	if s := c.QueryParam("seed"); s != "" {
		if seed, err = strconv.ParseUint(s, 10, 64); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seed"})
		}
	}

	start := time.Now()
	raster, err := hero.RenderPoster(h.Config, w, ht, seed, frames)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render poster"})
	}
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to encode image"})
	}
	metrics.PosterRenders.Inc()
	metrics.PosterRenderDuration.Observe(time.Since(start).Seconds())

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// queryInt parses an optional integer query parameter and clamps it to
// [lo, hi]. A malformed value is an error; an absent one yields def.
func queryInt(c echo.Context, name string, def, lo, hi int) (int, error) {
	s := c.QueryParam(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return min(max(v, lo), hi), nil
}

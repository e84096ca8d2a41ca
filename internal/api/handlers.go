package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/youruser/collageapp/internal/collage"
	"github.com/youruser/collageapp/internal/config"
	"github.com/youruser/collageapp/internal/ctxlog"
	imagepkg "github.com/youruser/collageapp/internal/image"
)

// maxURLs caps a single collage request.
const maxURLs = 200

// Handlers serves collages built from the URLs posted by clients.
type Handlers struct {
	source collage.Source
	cfg    config.Config
	logger *slog.Logger
}

func NewHandlers(source collage.Source, cfg config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{source: source, cfg: cfg, logger: logger}
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type collageRequest struct {
	URLs         []string `json:"urls"`
	ImagesPerRow int      `json:"images_per_row"`
	Layout       string   `json:"layout"`
	QRText       string   `json:"qr_text"`
}

// collage builds a collage from the posted URLs and returns it as a JPEG.
func (h *Handlers) collage(c *gin.Context) {
	var req collageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urls must not be empty"})
		return
	}
	if len(req.URLs) > maxURLs {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many urls, max " + strconv.Itoa(maxURLs)})
		return
	}
	layout := req.Layout
	if layout == "" {
		layout = h.cfg.Layout
	}
	parsedLayout, err := imagepkg.ParseLayout(layout)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	perRow := req.ImagesPerRow
	if perRow <= 0 {
		if perRow < 0 {
			h.logger.Warn("invalid images per row, using default", "got", perRow, "default", h.cfg.ImagesPerRow)
		}
		perRow = h.cfg.ImagesPerRow
	}

	ctx := ctxlog.WithLogger(c.Request.Context(), h.logger)
	b := collage.NewBuilder(h.source,
		collage.BuilderImagesPerRow(perRow),
		collage.BuilderLayout(parsedLayout),
		collage.BuilderMaxDimension(h.cfg.MaxDimension),
		collage.BuilderWorkers(h.cfg.Workers),
		collage.BuilderQRText(req.QRText),
	)
	res, err := b.Build(ctx, req.URLs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Collage-Total", strconv.Itoa(res.Total))
	c.Header("X-Collage-Succeeded", strconv.Itoa(res.Succeeded))
	if res.Empty() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no valid images"})
		return
	}

	buf := new(bytes.Buffer)
	if err := imagepkg.EncodeJPEG(buf, res.Canvas, h.cfg.JPEGQuality); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

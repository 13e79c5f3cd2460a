// Package web serves the statement upload and listing endpoints.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/statements/internal/buildinfo"
	"github.com/cleared-dev/statements/internal/importer"
	"github.com/cleared-dev/statements/internal/ingest"
	"github.com/cleared-dev/statements/internal/logger"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/store"
)

// Importer runs one uploaded file through the import pipeline.
type Importer interface {
	Import(ctx context.Context, path, ext string, ov model.Overrides) (ingest.Result, error)
}

// Lister returns the most recently stored records.
type Lister interface {
	Recent(ctx context.Context, limit int) ([]model.Record, error)
}

// Options configures a Server.
type Options struct {
	UploadDir      string // temporary directory when empty
	MaxUploadBytes int64
}

// Server holds the HTTP handlers.
type Server struct {
	importer Importer
	lister   Lister
	log      zerolog.Logger
	opts     Options
}

// NewServer creates a Server.
func NewServer(imp Importer, lister Lister, log zerolog.Logger, opts Options) *Server {
	return &Server{importer: imp, lister: lister, log: log, opts: opts}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.log), gin.Recovery())

	r.GET("/healthz", s.health)
	r.POST("/upload", s.upload)
	r.GET("/transactions", s.listTransactions)
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": buildinfo.String()})
}

// multipartOverhead is the body allowance for form fields and part headers
// on top of the file size limit.
const multipartOverhead = 64 << 10

// upload handles a multipart statement upload with optional bank_name and
// account_number overrides.
func (s *Server) upload(c *gin.Context) {
	if s.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes+multipartOverhead)
	}
	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if s.opts.MaxUploadBytes > 0 && file.Size > s.opts.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	ext := filepath.Ext(file.Filename)
	if !importer.Supported(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ingest.Message(importer.ErrUnsupportedFormat)})
		return
	}

	if s.opts.UploadDir != "" {
		if err := os.MkdirAll(s.opts.UploadDir, 0o755); err != nil {
			s.log.Error().Err(err).Msg("creating upload dir")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
			return
		}
	}
	dir, err := os.MkdirTemp(s.opts.UploadDir, "upload-*")
	if err != nil {
		s.log.Error().Err(err).Msg("creating upload temp dir")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		s.log.Error().Err(err).Msg("saving upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	ov := model.Overrides{
		BankName:      c.PostForm("bank_name"),
		AccountNumber: c.PostForm("account_number"),
	}
	log := s.log.With().Str("request_id", c.GetString(requestIDKey)).Logger()
	ctx := logger.WithContext(c.Request.Context(), log)

	res, err := s.importer.Import(ctx, path, ext, ov)
	var partial *ingest.PartialImportError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"imported": res.Imported, "total": res.Total, "message": res.Summary()})
	case ingest.IsUserError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": ingest.Message(err)})
	case errors.As(err, &partial):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    ingest.Message(err),
			"imported": partial.Imported,
			"total":    partial.Total,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": ingest.Message(err)})
	}
}

// transactionView is the listing form of a record: ISO dates and amounts
// with two decimals.
type transactionView struct {
	ID              uint      `json:"id"`
	BankName        *string   `json:"bank_name"`
	AccountNumber   *string   `json:"account_number"`
	ValueDate       *string   `json:"value_date"`
	TransactionDate *string   `json:"transaction_date"`
	Narration       *string   `json:"narration"`
	ReferenceNo     *string   `json:"reference_no"`
	DebitAmount     string    `json:"debit_amount"`
	CreditAmount    string    `json:"credit_amount"`
	Balance         *string   `json:"balance"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
}

func newTransactionView(r model.Record) transactionView {
	v := transactionView{
		ID:              r.ID,
		BankName:        r.BankName,
		AccountNumber:   r.AccountNumber,
		ValueDate:       nonEmpty(r.ValueDateString()),
		TransactionDate: nonEmpty(r.TransactionDateString()),
		Narration:       r.Narration,
		ReferenceNo:     r.ReferenceNo,
		DebitAmount:     r.DebitAmount.StringFixed(2),
		CreditAmount:    r.CreditAmount.StringFixed(2),
		Currency:        r.Currency,
		CreatedAt:       r.CreatedAt,
	}
	if r.Balance.Valid {
		v.Balance = nonEmpty(r.Balance.Decimal.StringFixed(2))
	}
	return v
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// listTransactions returns the most recent records, newest first.
func (s *Server) listTransactions(c *gin.Context) {
	recs, err := s.lister.Recent(c.Request.Context(), store.RecentLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("listing transactions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	views := make([]transactionView, 0, len(recs))
	for _, r := range recs {
		views = append(views, newTransactionView(r))
	}
	c.JSON(http.StatusOK, gin.H{"transactions": views, "count": len(views)})
}

package receipt

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chukaufo/spend-sight/internal/insights"
	"github.com/chukaufo/spend-sight/internal/ocr"
	"github.com/chukaufo/spend-sight/internal/parsing"
)

// IDGenerator generates unique IDs for receipts.
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time.
type TimeSource interface {
	Now() time.Time
}

type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service wires the scan pipeline together: store the image, run OCR,
// parse the transcript, persist the result.
type Service struct {
	db          DB
	engine      ocr.Engine
	images      ImageStore
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a Service with the default ID generator and clock.
func NewService(db DB, engine ocr.Engine, images ImageStore) *Service {
	return &Service{
		db:          db,
		engine:      engine,
		images:      images,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a Service with injected dependencies for
// testing.
func NewServiceWithDeps(db DB, engine ocr.Engine, images ImageStore, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		engine:      engine,
		images:      images,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

var (
	filenameJunk   = regexp.MustCompile(`[^a-zA-Z0-9 \-_]`)
	filenameSpaces = regexp.MustCompile(` +`)
)

// sanitizeFilename tames the long, punctuation-heavy names phone
// cameras produce before the name becomes part of a stored path.
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)

	base = filenameJunk.ReplaceAllString(base, "")
	base = filenameSpaces.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	if len(base) > 50 {
		base = base[:50]
	}
	if base == "" {
		base = "receipt"
	}
	return base + ext
}

// dollarsToCents converts a parsed dollar amount to integer cents.
func dollarsToCents(dollars float64) int {
	return int(math.Round(dollars * 100))
}

// ProcessReceipt stores the uploaded image, transcribes it, parses the
// transcript, and persists the resulting receipt. Extraction never
// fails outright: unparseable fields fall back to defaults the user
// can correct afterwards.
func (s *Service) ProcessReceipt(filename string, data []byte, contentType string) (*Receipt, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	savedName, err := s.images.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("saving image: %w", err)
	}

	rawText, err := s.engine.RecognizeText(data, contentType)
	if err != nil {
		slog.Error("Failed to transcribe receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.images.Delete(savedName)
		return nil, fmt.Errorf("transcribing receipt: %w", err)
	}

	parsed := parsing.Parse(rawText)

	storeName := parsed.StoreName
	if storeName == "" {
		storeName = "Unknown Store"
	}
	date := now
	if parsed.Date != nil {
		date = *parsed.Date
	}
	total := 0
	if parsed.Total != nil {
		total = dollarsToCents(*parsed.Total)
	}
	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, Item{Name: it.Name, Price: dollarsToCents(it.Price)})
	}

	receipt := &Receipt{
		ID:          id,
		StoreName:   storeName,
		Date:        date,
		Total:       total,
		Category:    DefaultCategory,
		Items:       items,
		RawText:     rawText,
		Filename:    savedName,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.SaveReceipt(receipt); err != nil {
		s.images.Delete(savedName)
		return nil, fmt.Errorf("saving receipt: %w", err)
	}

	return receipt, nil
}

// Update carries the corrections a user makes after reviewing a scan.
// Nil fields are left unchanged.
type Update struct {
	StoreName *string    `json:"store_name,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Total     *int       `json:"total,omitempty"`
	Category  *string    `json:"category,omitempty"`
}

// UpdateReceipt applies a manual correction to a stored receipt.
func (s *Service) UpdateReceipt(id string, upd Update) (*Receipt, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt for update: %w", err)
	}

	if upd.StoreName != nil {
		name := strings.TrimSpace(*upd.StoreName)
		if name == "" {
			return nil, fmt.Errorf("store name cannot be empty")
		}
		receipt.StoreName = name
	}
	if upd.Date != nil {
		receipt.Date = *upd.Date
	}
	if upd.Total != nil {
		if *upd.Total < 0 {
			return nil, fmt.Errorf("total cannot be negative")
		}
		receipt.Total = *upd.Total
	}
	if upd.Category != nil {
		if !ValidCategory(*upd.Category) {
			return nil, fmt.Errorf("unknown category: %s", *upd.Category)
		}
		receipt.Category = *upd.Category
	}
	receipt.UpdatedAt = s.timeSource.Now()

	if err := s.db.SaveReceipt(receipt); err != nil {
		return nil, fmt.Errorf("saving updated receipt: %w", err)
	}
	return receipt, nil
}

// GetReceipt retrieves a receipt by ID.
func (s *Service) GetReceipt(id string) (*Receipt, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return receipt, nil
}

// ListReceipts returns all receipts.
func (s *Service) ListReceipts() ([]*Receipt, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt and its stored image.
func (s *Service) DeleteReceipt(id string) error {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return fmt.Errorf("getting receipt for deletion: %w", err)
	}

	if err := s.images.Delete(receipt.Filename); err != nil {
		slog.Warn("Failed to delete image", "filename", receipt.Filename, "error", err)
	}

	if err := s.db.DeleteReceipt(id); err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}
	return nil
}

// GetReceiptFile retrieves the stored image for a receipt.
func (s *Service) GetReceiptFile(id string) ([]byte, string, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt: %w", err)
	}

	data, err := s.images.Get(receipt.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt image: %w", err)
	}

	return data, receipt.ContentType, nil
}

// DailySpending aggregates all receipts into a gap-filled daily series
// for the last days days, plus its summary.
func (s *Service) DailySpending(days int) ([]insights.SpendPoint, insights.Summary, error) {
	records, err := s.spendRecords()
	if err != nil {
		return nil, insights.Summary{}, err
	}
	points := insights.Daily(records, days, s.timeSource.Now())
	return points, insights.Summarize(points), nil
}

// WeeklySpending aggregates all receipts into a gap-filled weekly
// series for the last weeks weeks, plus its summary.
func (s *Service) WeeklySpending(weeks int) ([]insights.SpendPoint, insights.Summary, error) {
	records, err := s.spendRecords()
	if err != nil {
		return nil, insights.Summary{}, err
	}
	points := insights.Weekly(records, weeks, s.timeSource.Now())
	return points, insights.Summarize(points), nil
}

// CategoryBreakdown sums spending per category over the last days days.
func (s *Service) CategoryBreakdown(days int) ([]insights.CategoryTotal, error) {
	records, err := s.spendRecords()
	if err != nil {
		return nil, err
	}
	return insights.ByCategory(records, days, s.timeSource.Now()), nil
}

func (s *Service) spendRecords() ([]insights.Record, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	records := make([]insights.Record, 0, len(receipts))
	for _, r := range receipts {
		records = append(records, insights.Record{
			Date:     r.Date,
			Total:    r.Total,
			Category: r.Category,
		})
	}
	return records, nil
}

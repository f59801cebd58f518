// Package export writes client snapshots to CSV or Excel files for offline
// review by management.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Format is the export file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// Result describes a generated export file.
type Result struct {
	FileName    string `json:"file_name"`
	FilePath    string `json:"-"`
	Format      Format `json:"format"`
	ClientCount int    `json:"client_count"`
}

// Service handles export business logic.
type Service struct {
	store       domain.Store
	storagePath string
}

// NewService creates a new export service and ensures the storage directory
// exists.
func NewService(st domain.Store, storagePath string) *Service {
	os.MkdirAll(storagePath, 0o755)

	return &Service{
		store:       st,
		storagePath: storagePath,
	}
}

// ExportClients writes all clients, optionally filtered by tier, to a file
// in the requested format.
func (s *Service) ExportClients(ctx context.Context, format Format, tier string) (*Result, error) {
	if format != FormatCSV && format != FormatExcel {
		return nil, domain.NewValidationError("invalid format: must be csv or excel")
	}

	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	if tier != "" {
		filtered := clients[:0]
		for _, c := range clients {
			if string(c.Tier) == tier {
				filtered = append(filtered, c)
			}
		}
		clients = filtered
	}

	timestamp := time.Now().Format("20060102-150405")
	ext := "csv"
	if format == FormatExcel {
		ext = "xlsx"
	}
	fileName := fmt.Sprintf("clients-%s.%s", timestamp, ext)
	filePath := filepath.Join(s.storagePath, fileName)

	var genErr error
	if format == FormatCSV {
		genErr = s.generateCSV(filePath, clients)
	} else {
		genErr = s.generateExcel(filePath, clients)
	}
	if genErr != nil {
		return nil, domain.NewInternalError(genErr)
	}

	return &Result{
		FileName:    fileName,
		FilePath:    filePath,
		Format:      format,
		ClientCount: len(clients),
	}, nil
}

var exportHeader = []string{
	"ID", "Name", "Phone", "Email", "Sector", "Category", "Plot", "File Number",
	"Contactability", "Responsiveness", "Financial", "Engagement", "Sentiment",
	"Health Score", "Tier", "Promise Funnel", "Last Interaction",
}

func clientRow(c models.Client) []string {
	return []string{
		c.ID.String(),
		c.Name,
		c.Phone,
		c.Email,
		c.Sector,
		c.Category,
		c.Plot,
		c.FileNumber,
		strconv.Itoa(c.Scores.Contactability),
		strconv.Itoa(c.Scores.Responsiveness),
		strconv.Itoa(c.Scores.Financial),
		strconv.Itoa(c.Scores.Engagement),
		strconv.Itoa(c.Scores.Sentiment),
		strconv.Itoa(c.HealthScore),
		string(c.Tier),
		string(c.PromiseFunnel),
		c.LastInteraction.Format(time.RFC3339),
	}
}

func (s *Service) generateCSV(path string, clients []models.Client) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range clients {
		if err := writer.Write(clientRow(c)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

func (s *Service) generateExcel(path string, clients []models.Client) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Clients"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, c := range clients {
		for colIdx, value := range clientRow(c) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	return nil
}

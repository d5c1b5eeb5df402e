// Package export gera a planilha de clientes baixada pelo painel.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/report"
)

const (
	ClientsSheet = "Clients"
	SummarySheet = "Summary"
	ContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var clientHeaders = []string{
	"Name", "Email", "Phone", "Type", "Service", "Price", "Status",
	"Source", "Pipeline Stage", "Next Follow-up", "Created At",
}

// WriteClients escreve uma aba com os registros e outra com o resumo do painel.
func WriteClients(w io.Writer, clients []*entity.Client) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ClientsSheet)
	if err != nil {
		return fmt.Errorf("erro ao criar aba: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("erro ao criar estilo: %w", err)
	}

	if err := writeRow(f, ClientsSheet, 1, toAny(clientHeaders), headerStyle); err != nil {
		return err
	}
	for i, c := range clients {
		row := []any{
			c.Name, c.Email, c.Phone, c.Type, c.Service, c.Price, c.Status,
			c.Source, c.PipelineStage, c.NextFollowUp, c.CreatedAt.Format("2006-01-02"),
		}
		if err := writeRow(f, ClientsSheet, i+2, row, 0); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(ClientsSheet, "A", "K", 18); err != nil {
		return err
	}

	if err := writeSummary(f, report.Summarize(clients), headerStyle); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("erro ao gravar planilha: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, s report.Summary, headerStyle int) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("erro ao criar aba: %w", err)
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Total Revenue", s.TotalRevenue},
		{"Active Jobs", s.ActiveJobs},
		{"Completed Jobs", s.CompletedJobs},
		{},
		{"Service", "Revenue"},
	}
	for _, svc := range s.RevenueByService {
		rows = append(rows, []any{svc.Name, svc.Revenue})
	}

	for i, row := range rows {
		style := 0
		if i == 0 || (len(row) > 0 && row[0] == "Service") {
			style = headerStyle
		}
		if err := writeRow(f, SummarySheet, i+1, row, style); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 20)
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	if len(values) == 0 {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("erro ao escrever linha %d: %w", row, err)
	}
	if style == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// Package report dobra o snapshot de clientes nas estatísticas e séries
// dos gráficos do painel. Tudo é puro e recalculado a cada requisição.
package report

import "github.com/xavierca1/ligue-crm/internal/entity"

const (
	OtherService  = "Other"
	DirectSource  = "Direct"
	colorPending  = "#f97316"
	colorActive   = "#3b82f6"
	colorComplete = "#22c55e"
)

var palette = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff8042", "#00C49F"}

type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type ServiceRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type Summary struct {
	TotalRevenue       float64          `json:"total_revenue"`
	ActiveJobs         int              `json:"active_jobs"`
	CompletedJobs      int              `json:"completed_jobs"`
	StatusDistribution []Slice          `json:"status_distribution"`
	RevenueByService   []ServiceRevenue `json:"revenue_by_service"`
	LeadSources        []Slice          `json:"lead_sources"`
}

func Summarize(clients []*entity.Client) Summary {
	return Summary{
		TotalRevenue:       TotalRevenue(clients),
		ActiveJobs:         countJobs(clients, entity.StatusInProgress),
		CompletedJobs:      countJobs(clients, entity.StatusCompleted),
		StatusDistribution: StatusDistribution(clients),
		RevenueByService:   RevenueByService(clients),
		LeadSources:        LeadSources(clients),
	}
}

// TotalRevenue soma o preço dos registros do tipo client; leads não entram.
func TotalRevenue(clients []*entity.Client) float64 {
	var total float64
	for _, c := range clients {
		if c.Type == entity.TypeClient {
			total += c.Price
		}
	}
	return total
}

func countJobs(clients []*entity.Client, status string) int {
	n := 0
	for _, c := range clients {
		if c.Type == entity.TypeClient && c.Status == status {
			n++
		}
	}
	return n
}

// StatusDistribution conta todos os registros por status. Faixas vazias somem.
func StatusDistribution(clients []*entity.Client) []Slice {
	buckets := []Slice{
		{Name: "Pending", Color: colorPending},
		{Name: "Active", Color: colorActive},
		{Name: "Completed", Color: colorComplete},
	}
	for _, c := range clients {
		switch c.Status {
		case entity.StatusPending:
			buckets[0].Value++
		case entity.StatusInProgress:
			buckets[1].Value++
		case entity.StatusCompleted:
			buckets[2].Value++
		}
	}

	out := make([]Slice, 0, len(buckets))
	for _, b := range buckets {
		if b.Value > 0 {
			out = append(out, b)
		}
	}
	return out
}

// RevenueByService agrupa por serviço na ordem em que aparecem.
func RevenueByService(clients []*entity.Client) []ServiceRevenue {
	out := []ServiceRevenue{}
	index := map[string]int{}
	for _, c := range clients {
		if c.Type != entity.TypeClient {
			continue
		}
		name := c.Service
		if name == "" {
			name = OtherService
		}
		if i, ok := index[name]; ok {
			out[i].Revenue += c.Price
			continue
		}
		index[name] = len(out)
		out = append(out, ServiceRevenue{Name: name, Revenue: c.Price})
	}
	return out
}

// LeadSources conta todos os registros por origem; sem origem vira "Direct".
func LeadSources(clients []*entity.Client) []Slice {
	out := []Slice{}
	index := map[string]int{}
	for _, c := range clients {
		name := c.Source
		if name == "" {
			name = DirectSource
		}
		if i, ok := index[name]; ok {
			out[i].Value++
			continue
		}
		index[name] = len(out)
		out = append(out, Slice{Name: name, Value: 1, Color: palette[len(out)%len(palette)]})
	}
	return out
}

package fuelprice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Prices содержит текущие розничные цены за литр топлива
type Prices struct {
	Gasoline float64 `json:"gasoline"`
	Diesel   float64 `json:"diesel"`
}

// Client - интерфейс поставщика цен на топливо
// Любая ошибка (сеть, парсинг, изменение верстки) означает "данных нет";
// вызывающая сторона продолжает работать с последними сохраненными ценами
type Client interface {
	// Fetch возвращает текущие цены на бензин и дизель
	Fetch(ctx context.Context) (*Prices, error)
}

// httpClient - HTTP реализация поставщика цен
// Парсит страницу цен Petrol Ofisi: строки таблицы price-row,
// приоритет - округ "ISTANBUL (AVRUPA)", цены с НДС (span.with-tax)
type httpClient struct {
	sourceURL  string
	httpClient *http.Client
}

// NewHTTPClient создает новый HTTP клиент поставщика цен
func NewHTTPClient(sourceURL string, timeout time.Duration) Client {
	return &httpClient{
		sourceURL: sourceURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Fetch загружает страницу поставщика и извлекает цены
func (c *httpClient) Fetch(ctx context.Context) (*Prices, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Без браузерных заголовков сайт отдает заглушку
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read price page: %w", err)
	}

	return Parse(string(body))
}

var (
	priceRowRe = regexp.MustCompile(`(?s)<tr[^>]*class="[^"]*price-row[^"]*"[^>]*>.*?</tr>`)
	// Атрибут назван с опечаткой на самом сайте
	districtRe = regexp.MustCompile(`data-disctrict-name="([^"]*)"`)
	withTaxRe  = regexp.MustCompile(`(?s)<span[^>]*class="[^"]*with-tax[^"]*"[^>]*>(.*?)</span>`)
	nonPriceRe = regexp.MustCompile(`[^\d,.]`)
)

// Parse извлекает цены из HTML страницы поставщика.
// Первая цена в строке - бензин (Kurşunsuz 95), вторая - дизель (Motorin)
func Parse(html string) (*Prices, error) {
	rows := priceRowRe.FindAllString(html, -1)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no price rows found in page")
	}

	// Ищем строку нужного округа; если не нашли - берем первую
	selected := rows[0]
	for _, row := range rows {
		m := districtRe.FindStringSubmatch(row)
		if m == nil {
			continue
		}
		if strings.Contains(strings.ToUpper(m[1]), "ISTANBUL (AVRUPA)") ||
			strings.Contains(strings.ToUpper(m[1]), "İSTANBUL (AVRUPA)") {
			selected = row
			break
		}
	}

	spans := withTaxRe.FindAllStringSubmatch(selected, -1)
	if len(spans) < 2 {
		return nil, fmt.Errorf("expected at least 2 price cells, got %d", len(spans))
	}

	gasoline := parsePrice(spans[0][1])
	diesel := parsePrice(spans[1][1])

	if gasoline <= 0 || diesel <= 0 {
		return nil, fmt.Errorf("failed to parse prices: gasoline=%v diesel=%v", gasoline, diesel)
	}

	return &Prices{Gasoline: gasoline, Diesel: diesel}, nil
}

// parsePrice преобразует строки вида "53,16 TL/L" в float64
func parsePrice(raw string) float64 {
	clean := nonPriceRe.ReplaceAllString(raw, "")
	clean = strings.ReplaceAll(clean, ",", ".")

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return value
}

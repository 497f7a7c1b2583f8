package fuelprice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const samplePage = `
<html><body><table>
<tr class="price-row" data-disctrict-name="ADANA">
  <td><span class="with-tax">51,20 TL/L</span></td>
  <td><span class="with-tax">49,80 TL/L</span></td>
</tr>
<tr class="price-row" data-disctrict-name="ISTANBUL (AVRUPA)">
  <td><span class="with-tax">53,16 TL/L</span></td>
  <td><span class="with-tax">50,44 TL/L</span></td>
</tr>
<tr class="price-row" data-disctrict-name="IZMIR">
  <td><span class="with-tax">52,00 TL/L</span></td>
  <td><span class="with-tax">50,10 TL/L</span></td>
</tr>
</table></body></html>`

// TestParse тестирует извлечение цен из HTML страницы
func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected *Prices
		wantErr  bool
	}{
		{
			name:     "выбирается строка ISTANBUL (AVRUPA)",
			html:     samplePage,
			expected: &Prices{Gasoline: 53.16, Diesel: 50.44},
		},
		{
			name: "без нужного округа берется первая строка",
			html: `<tr class="price-row" data-disctrict-name="ANKARA">
				<td><span class="with-tax">50,00</span></td>
				<td><span class="with-tax">48,50</span></td>
			</tr>`,
			expected: &Prices{Gasoline: 50.0, Diesel: 48.5},
		},
		{
			name:    "страница без строк цен",
			html:    `<html><body>maintenance</body></html>`,
			wantErr: true,
		},
		{
			name: "строка с одной ценой",
			html: `<tr class="price-row" data-disctrict-name="ANKARA">
				<td><span class="with-tax">50,00</span></td>
			</tr>`,
			wantErr: true,
		},
		{
			name: "нечисловые цены",
			html: `<tr class="price-row" data-disctrict-name="ANKARA">
				<td><span class="with-tax">-</span></td>
				<td><span class="with-tax">-</span></td>
			</tr>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices, err := Parse(tt.html)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, prices)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected.Gasoline, prices.Gasoline)
			assert.Equal(t, tt.expected.Diesel, prices.Diesel)
		})
	}
}

// TestHTTPClient_Fetch тестирует загрузку цен через HTTP
func TestHTTPClient_Fetch(t *testing.T) {
	t.Run("успешная загрузка", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Сайт требует браузерные заголовки
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(samplePage))
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, 5*time.Second)
		prices, err := client.Fetch(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 53.16, prices.Gasoline)
		assert.Equal(t, 50.44, prices.Diesel)
	})

	t.Run("ошибка сервера", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewHTTPClient(srv.URL, 5*time.Second)
		prices, err := client.Fetch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, prices)
	})
}

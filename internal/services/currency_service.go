package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripgenie/internal/models/response_models"
)

const defaultExchangeRateBaseURL = "https://v6.exchangerate-api.com/v6"

var countryCurrencies = map[string]string{
	"India":                "INR",
	"USA":                  "USD",
	"United States":        "USD",
	"Sri Lanka":            "LKR",
	"Japan":                "JPY",
	"Italy":                "EUR",
	"France":               "EUR",
	"Germany":              "EUR",
	"Spain":                "EUR",
	"United Kingdom":       "GBP",
	"Thailand":             "THB",
	"Vietnam":              "VND",
	"Indonesia":            "IDR",
	"Australia":            "AUD",
	"Canada":               "CAD",
	"Singapore":            "SGD",
	"Switzerland":          "CHF",
	"UAE":                  "AED",
	"United Arab Emirates": "AED",
}

// ResolveDestinationCurrency maps the country after the last comma of a
// destination ("Paris, France") to its currency. Unknown countries report false.
func ResolveDestinationCurrency(destination string) (string, bool) {
	country := destination
	if i := strings.LastIndex(destination, ","); i >= 0 {
		country = destination[i+1:]
	}
	code, ok := countryCurrencies[strings.TrimSpace(country)]
	return code, ok
}

// ConversionResult is Converted when Amount is in the requested currency and
// otherwise carries the original amount plus the reason conversion was skipped.
type ConversionResult struct {
	Converted        bool
	Amount           float64
	Currency         string
	OriginalAmount   float64
	OriginalCurrency string
	Reason           string
}

func (r ConversionResult) Quote() response_models.BudgetQuote {
	return response_models.BudgetQuote{
		Amount:           r.Amount,
		Currency:         r.Currency,
		OriginalAmount:   r.OriginalAmount,
		OriginalCurrency: r.OriginalCurrency,
		Converted:        r.Converted,
		Reason:           r.Reason,
	}
}

type CurrencyServiceInterface interface {
	Convert(ctx context.Context, amount float64, from, to string) ConversionResult
}

type CurrencyService struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	logger  *zap.Logger
}

func NewCurrencyService(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) CurrencyServiceInterface {
	if baseURL == "" {
		baseURL = defaultExchangeRateBaseURL
	}
	return &CurrencyService{
		HTTP:    &http.Client{Timeout: timeout},
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

type pairConversionResponse struct {
	Result           string   `json:"result"`
	ErrorType        string   `json:"error-type"`
	ConversionResult *float64 `json:"conversion_result"`
}

// Convert never fails: any problem with the rate service yields an unconverted
// result.
func (s *CurrencyService) Convert(ctx context.Context, amount float64, from, to string) ConversionResult {
	unconverted := func(reason string) ConversionResult {
		return ConversionResult{
			Amount:           amount,
			Currency:         from,
			OriginalAmount:   amount,
			OriginalCurrency: from,
			Reason:           reason,
		}
	}

	if from == to {
		return ConversionResult{
			Converted:        true,
			Amount:           amount,
			Currency:         to,
			OriginalAmount:   amount,
			OriginalCurrency: from,
		}
	}
	if s.APIKey == "" {
		return unconverted("exchange rate service not configured")
	}

	endpoint := fmt.Sprintf("%s/%s/pair/%s/%s/%s", s.BaseURL,
		url.PathEscape(s.APIKey), url.PathEscape(from), url.PathEscape(to),
		strconv.FormatFloat(amount, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return unconverted("build request: " + err.Error())
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		// the key is part of the path, so only the cause is logged
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		s.logger.Warn("currency conversion failed", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return unconverted("exchange rate service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("currency conversion failed", zap.String("from", from), zap.String("to", to), zap.Int("status", resp.StatusCode))
		return unconverted(fmt.Sprintf("exchange rate service returned %d", resp.StatusCode))
	}

	var body pairConversionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return unconverted("decode exchange rate response")
	}
	if body.Result != "success" || body.ConversionResult == nil {
		reason := "exchange rate service did not succeed"
		if body.ErrorType != "" {
			reason += ": " + body.ErrorType
		}
		return unconverted(reason)
	}

	return ConversionResult{
		Converted:        true,
		Amount:           math.Round(*body.ConversionResult),
		Currency:         to,
		OriginalAmount:   amount,
		OriginalCurrency: from,
	}
}

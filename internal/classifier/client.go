package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lucsky/cuid"
	"github.com/ktuncer/wastewise/internal/models"
)

// Client calls the remote inference service that classifies one
// uploaded tray photo into per-dish waste records.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

type classifyRequest struct {
	ImageURL     string `json:"image_url"`
	AnalysisDate string `json:"analysis_date,omitempty"`
	PhotoDay     string `json:"photo_day,omitempty"`
}

type classifyResponse struct {
	Message string `json:"message"`
	Results []struct {
		FoodCategory string `json:"food_category"`
		FoodType     string `json:"food_type"`
		IsWaste      bool   `json:"is_waste"`
		ImageURL     string `json:"image_url"`
	} `json:"results"`
}

// Classify submits one photo reference tagged with the batch's day and
// decodes the returned records. The remote side crops the tray, so one
// photo may come back as several records.
func (c *Client) Classify(ctx context.Context, imageURL string, day models.DayKey) ([]models.AnalysisRecord, error) {
	reqBody := classifyRequest{ImageURL: imageURL}
	switch day.Kind {
	case models.DayKindDate:
		reqBody.AnalysisDate = day.Date.Format(models.DateLayout)
		if weekday, ok := day.WorkWeekday(); ok {
			reqBody.PhotoDay = weekday.Label()
		}
	case models.DayKindWeekday:
		reqBody.PhotoDay = day.Weekday.Label()
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("classification service returned %d: %s", resp.StatusCode, string(body))
	}

	var decoded classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding classification response: %w", err)
	}

	now := time.Now()
	records := make([]models.AnalysisRecord, 0, len(decoded.Results))
	for _, result := range decoded.Results {
		recordURL := result.ImageURL
		if recordURL == "" {
			recordURL = imageURL
		}
		records = append(records, models.AnalysisRecord{
			ID:           cuid.New(),
			ImageURL:     recordURL,
			FoodCategory: result.FoodCategory,
			FoodType:     result.FoodType,
			IsWaste:      result.IsWaste,
			PhotoDay:     reqBody.PhotoDay,
			AnalysisDate: reqBody.AnalysisDate,
			CreatedAt:    now,
		})
	}
	return records, nil
}

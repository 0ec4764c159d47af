package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

const headerUserID = "X-User-ID"

// Client клиент для работы с API бронирований площадок
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListVenues получает список площадок
func (c *Client) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	var list VenueList
	if err := c.do(ctx, http.MethodGet, "/api/v1/venues", 0, nil, &list); err != nil {
		return nil, err
	}

	venues := make([]*domain.Venue, 0, len(list.Venues))
	for i := range list.Venues {
		venues = append(venues, list.Venues[i].ToDomain())
	}
	return venues, nil
}

// GetVenue получает площадку по ID
func (c *Client) GetVenue(ctx context.Context, venueID int64) (*domain.Venue, error) {
	var venue Venue
	path := fmt.Sprintf("/api/v1/venues/%d", venueID)
	if err := c.do(ctx, http.MethodGet, path, 0, nil, &venue); err != nil {
		return nil, err
	}
	return venue.ToDomain(), nil
}

// GetVenueBookings получает бронирования площадки начиная с даты from (если задана)
func (c *Client) GetVenueBookings(ctx context.Context, venueID int64, from *time.Time) ([]*domain.Booking, error) {
	path := fmt.Sprintf("/api/v1/venues/%d/bookings", venueID)
	if from != nil {
		path += "?" + url.Values{"startDate": {domain.DateKey(*from)}}.Encode()
	}

	var list BookingList
	if err := c.do(ctx, http.MethodGet, path, 0, nil, &list); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(list.Bookings))
	for i := range list.Bookings {
		bookings = append(bookings, list.Bookings[i].ToDomain())
	}

	c.log.Info("GetVenueBookings: fetched %d bookings for venue=%d", len(bookings), venueID)
	return bookings, nil
}

// CreateBooking создает бронирование от имени пользователя userID
func (c *Client) CreateBooking(ctx context.Context, userID int64, req *CreateBookingRequest) (*domain.Booking, error) {
	var created Booking
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings", userID, req, &created); err != nil {
		return nil, err
	}

	c.log.Info("CreateBooking: booking id=%d created for user=%d", created.ID, userID)
	return created.ToDomain(), nil
}

// do выполняет запрос и декодирует JSON ответ в out
func (c *Client) do(ctx context.Context, method, path string, userID int64, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if userID != 0 {
		req.Header.Set(headerUserID, strconv.FormatInt(userID, 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.log.Warn("%s %s: status %d: %s", method, path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// decodeError превращает ответ с ошибкой в *APIError
func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		kind:       kindForStatus(resp.StatusCode),
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Fields = body.Errors
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrInvalidResponse
	}
}

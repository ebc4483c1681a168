package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"tidybook/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(httpClient *HttpClient) *BookingClient {
	return &BookingClient{httpClient: httpClient}
}

func (c *BookingClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/bookings", body)
}

func (c *BookingClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/bookings", rawBody)
}

func (c *BookingClient) List(status string, page, limit int) (*Response, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("limit", fmt.Sprintf("%d", limit))

	return c.httpClient.GET("/api/bookings?" + q.Encode())
}

func (c *BookingClient) ListAll(status, serviceID string, page, limit int) (*Response, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if serviceID != "" {
		q.Set("serviceId", serviceID)
	}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("limit", fmt.Sprintf("%d", limit))

	return c.httpClient.GET("/api/bookings/all?" + q.Encode())
}

func (c *BookingClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/bookings/id/" + url.PathEscape(id))
}

func (c *BookingClient) UpdateStatus(id string, status string, reason string) (*Response, error) {
	body := map[string]string{"status": status}
	if reason != "" {
		body["cancellationReason"] = reason
	}
	return c.httpClient.PUT("/api/bookings/id/"+url.PathEscape(id), body)
}

func (c *BookingClient) Cancel(id string, reason string) (*Response, error) {
	path := "/api/bookings/id/" + url.PathEscape(id)
	if reason == "" {
		return c.httpClient.DELETE(path)
	}
	return c.httpClient.request("DELETE", path, map[string]string{"cancellationReason": reason}, nil)
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json:\n%+v\n%s", resp.ToString(), err)
	}

	return &booking, nil
}

func (c *BookingClient) DecodeBookingDetails(resp *Response) (*model.BookingDetails, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var details model.BookingDetails
	if err := json.Unmarshal(wrapper.Data, &details); err != nil {
		return nil, fmt.Errorf("could not decode booking json:\n%+v\n%s", resp.ToString(), err)
	}

	return &details, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.BookingDetails, error) {
	var wrapper struct {
		Data struct {
			Bookings []*model.BookingDetails `json:"bookings"`
		} `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking list:\n%+v\n%s", resp.ToString(), err)
	}

	return wrapper.Data.Bookings, nil
}

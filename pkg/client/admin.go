package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"tidybook/pkg/model"
)

type AdminClient struct {
	httpClient *HttpClient
}

func NewAdminClient(httpClient *HttpClient) *AdminClient {
	return &AdminClient{httpClient: httpClient}
}

func (c *AdminClient) Dashboard() (*Response, error) {
	return c.httpClient.GET("/api/admin/dashboard")
}

func (c *AdminClient) ListUsers(role, search string, page, limit int) (*Response, error) {
	q := url.Values{}
	if role != "" {
		q.Set("role", role)
	}
	if search != "" {
		q.Set("search", search)
	}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("limit", fmt.Sprintf("%d", limit))

	return c.httpClient.GET("/api/admin/users?" + q.Encode())
}

func (c *AdminClient) SetUserStatus(id string, isActive bool) (*Response, error) {
	path := "/api/admin/users/" + url.PathEscape(id) + "/status"
	return c.httpClient.PUT(path, map[string]bool{"isActive": isActive})
}

func (c *AdminClient) DecodeDashboard(resp *Response) (*model.DashboardStats, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode dashboard wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var stats model.DashboardStats
	if err := json.Unmarshal(wrapper.Data, &stats); err != nil {
		return nil, fmt.Errorf("could not decode dashboard json:\n%+v\n%s", resp.ToString(), err)
	}

	return &stats, nil
}

func (c *AdminClient) DecodeUsers(resp *Response) ([]*model.User, error) {
	var wrapper struct {
		Data struct {
			Users []*model.User `json:"users"`
		} `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode user list:\n%+v\n%s", resp.ToString(), err)
	}

	return wrapper.Data.Users, nil
}

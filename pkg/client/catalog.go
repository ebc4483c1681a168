package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"tidybook/pkg/model"
)

type CatalogClient struct {
	httpClient *HttpClient
}

func NewCatalogClient(httpClient *HttpClient) *CatalogClient {
	return &CatalogClient{httpClient: httpClient}
}

func (c *CatalogClient) List(category string, page, limit int) (*Response, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("limit", fmt.Sprintf("%d", limit))

	return c.httpClient.GET("/api/services?" + q.Encode())
}

func (c *CatalogClient) Categories() (*Response, error) {
	return c.httpClient.GET("/api/services/categories")
}

func (c *CatalogClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/services/id/" + url.PathEscape(id))
}

func (c *CatalogClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/services", body)
}

func (c *CatalogClient) Update(id string, body any) (*Response, error) {
	return c.httpClient.PUT("/api/services/id/"+url.PathEscape(id), body)
}

func (c *CatalogClient) Deactivate(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/services/id/" + url.PathEscape(id))
}

func (c *CatalogClient) DecodeService(resp *Response) (*model.Service, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode service wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var service model.Service
	if err := json.Unmarshal(wrapper.Data, &service); err != nil {
		return nil, fmt.Errorf("could not decode service json:\n%+v\n%s", resp.ToString(), err)
	}

	return &service, nil
}

func (c *CatalogClient) DecodeServices(resp *Response) ([]*model.Service, error) {
	var wrapper struct {
		Data struct {
			Services []*model.Service `json:"services"`
		} `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode service list:\n%+v\n%s", resp.ToString(), err)
	}

	return wrapper.Data.Services, nil
}

package apiclient

import (
	"net/url"

	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/domain"
)

// ListProducts forwards the browse query string to the catalog.
func (c *APIClient) ListProducts(query url.Values) (api.ProductListResponse, error) {
	path := "/products"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp api.ProductListResponse
	err := c.doJSON("GET", path, nil, "", &resp)
	return resp, err
}

func (c *APIClient) GetProduct(id string) (domain.Product, error) {
	var product domain.Product
	err := c.doJSON("GET", "/products/"+url.PathEscape(id), nil, "", &product)
	return product, err
}

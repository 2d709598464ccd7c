package gong

import (
	"context"
)

type LibraryFolder struct {
	Id   string `json:"folder_id"`
	Name string `json:"name"`
}

type LibraryItem struct {
	Id     string `json:"item_id"`
	Title  string `json:"title"`
	CallId string `json:"call_id"`
	Note   string `json:"note"`
}

type LibraryData struct {
	Folders []LibraryFolder `json:"folders"`
	Items   []LibraryItem   `json:"items"`
}

// GetLibraryData lists folders when folderId is empty, otherwise the
// items filed under that folder.
func (c *Client) GetLibraryData(ctx context.Context, folderId string) (LibraryData, error) {
	ctx, span := tracer.Start(ctx, "GetLibraryData")
	defer span.End()

	params := map[string]string{}
	if folderId != "" {
		params["folder_id"] = folderId
	}

	var res LibraryData
	err := c.get(ctx, "/library/get-library-data", params, &res)
	return res, err
}

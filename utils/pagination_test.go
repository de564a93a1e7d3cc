package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		itemCount int
		total     int64
		wantPages int
	}{
		{"exact fit", 1, 10, 10, 20, 2},
		{"remainder adds a page", 1, 10, 10, 21, 3},
		{"single short page", 1, 10, 3, 3, 1},
		{"empty", 1, 10, 0, 0, 0},
		{"last page partial", 3, 10, 1, 21, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.page, tt.limit, tt.itemCount, tt.total)
			if info.TotalPages != tt.wantPages {
				t.Errorf("totalPages = %d, want %d", info.TotalPages, tt.wantPages)
			}
			if info.CurrentPage != tt.page {
				t.Errorf("currentPage = %d, want %d", info.CurrentPage, tt.page)
			}
			if info.ItemCount != tt.itemCount {
				t.Errorf("itemCount = %d, want %d", info.ItemCount, tt.itemCount)
			}
			if info.TotalRecords != tt.total {
				t.Errorf("totalRecords = %d, want %d", info.TotalRecords, tt.total)
			}
		})
	}
}

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?page=3&limit=25", 3, 25},
		{"zero page floors to 1", "?page=0", 1, 10},
		{"negative page floors to 1", "?page=-2", 1, 10},
		{"limit capped", "?limit=500", 1, 10},
		{"garbage falls back", "?page=abc&limit=xyz", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/x"+tt.query, nil)
			page, limit := PageParams(c)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("PageParams = (%d, %d), want (%d, %d)", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 10); got != 0 {
		t.Errorf("Offset(1, 10) = %d, want 0", got)
	}
	if got := Offset(4, 25); got != 75 {
		t.Errorf("Offset(4, 25) = %d, want 75", got)
	}
}

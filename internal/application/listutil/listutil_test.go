package listutil

import (
	"net/url"
	"testing"
)

// TestParsePageParams_Defaults verifies default page params when no query values provided.
func TestParsePageParams_Defaults(t *testing.T) {
	q := url.Values{}
	p := ParsePageParams(q)
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.PerPage != DefaultPerPage {
		t.Errorf("expected per_page %d, got %d", DefaultPerPage, p.PerPage)
	}
}

// TestParsePageParams_Valid verifies correct parsing of valid page and per_page values.
func TestParsePageParams_Valid(t *testing.T) {
	q := url.Values{"page": {"3"}, "per_page": {"50"}}
	p := ParsePageParams(q)
	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.PerPage != 50 {
		t.Errorf("expected per_page 50, got %d", p.PerPage)
	}
}

// TestParsePageParams_InvalidPerPage verifies fallback to default for invalid per_page.
func TestParsePageParams_InvalidPerPage(t *testing.T) {
	q := url.Values{"per_page": {"25"}} // not in allowed list
	p := ParsePageParams(q)
	if p.PerPage != DefaultPerPage {
		t.Errorf("expected default per_page %d for invalid value, got %d", DefaultPerPage, p.PerPage)
	}
}

// TestParseSortParams_DisallowedColumn verifies disallowed sort columns are rejected.
func TestParseSortParams_DisallowedColumn(t *testing.T) {
	q := url.Values{"sort": {"access_code"}}
	s := ParseSortParams(q, []string{"name", "due_amount"})
	if s.Sort != "" {
		t.Errorf("expected empty sort for disallowed column, got %s", s.Sort)
	}
}

// TestParseSortParams_InvalidDir verifies invalid direction defaults to asc.
func TestParseSortParams_InvalidDir(t *testing.T) {
	q := url.Values{"sort": {"name"}, "dir": {"DROP TABLE"}}
	s := ParseSortParams(q, []string{"name"})
	if s.Dir != "asc" {
		t.Errorf("expected dir=asc for invalid dir, got %s", s.Dir)
	}
}

// TestParseListParams verifies search and status extraction alongside paging.
func TestParseListParams(t *testing.T) {
	q := url.Values{"q": {"rahul"}, "status": {"DUE"}, "page": {"2"}}
	p := ParseListParams(q, []string{"name"})
	if p.Search != "rahul" {
		t.Errorf("expected search=rahul, got %s", p.Search)
	}
	if p.Status != "DUE" {
		t.Errorf("expected status=DUE, got %s", p.Status)
	}
	if p.Page != 2 {
		t.Errorf("expected page 2, got %d", p.Page)
	}
}

// TestNewPageInfo verifies pagination metadata computation and clamping.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name                 string
		page, perPage, total int
		wantPage, wantPages  int
		wantOffset           int
	}{
		{"first page", 1, 20, 45, 1, 3, 0},
		{"middle page", 2, 20, 45, 2, 3, 20},
		{"page beyond end clamps", 9, 20, 45, 3, 3, 40},
		{"empty list", 1, 20, 0, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.page, tt.perPage, tt.total)
			if info.Page != tt.wantPage {
				t.Errorf("page: got %d, want %d", info.Page, tt.wantPage)
			}
			if info.TotalPages != tt.wantPages {
				t.Errorf("total pages: got %d, want %d", info.TotalPages, tt.wantPages)
			}
			if info.Offset() != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", info.Offset(), tt.wantOffset)
			}
		})
	}
}

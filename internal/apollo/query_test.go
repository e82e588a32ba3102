package apollo

import (
	"reflect"
	"testing"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

func int64p(v int64) *int64 { return &v }

func TestKeywordTags(t *testing.T) {
	cases := map[string]struct {
		in   []string
		want []string
	}{
		"mapped":      {in: []string{"Biotechnology"}, want: []string{"biotech", "biotechnology", "life sciences"}},
		"capped":      {in: []string{"Pharmaceuticals", "Digital Health"}, want: []string{"pharma", "pharmaceutical", "drug development"}},
		"passthrough": {in: []string{"Genomics", " "}, want: []string{"genomics"}},
		"dedup":       {in: []string{"genomics", "Genomics"}, want: []string{"genomics"}},
		"empty":       {in: nil, want: nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := KeywordTags(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestEmployeeRange(t *testing.T) {
	cases := map[string]struct {
		in   *dto.Range
		want string
	}{
		"nil":        {in: nil, want: ""},
		"open":       {in: &dto.Range{}, want: ""},
		"both":       {in: &dto.Range{Min: int64p(11), Max: int64p(200)}, want: "11,200"},
		"upper only": {in: &dto.Range{Max: int64p(50)}, want: "1,50"},
		"lower only": {in: &dto.Range{Min: int64p(500)}, want: "500,"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := EmployeeRange(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNewOrganizationQuery(t *testing.T) {
	q := NewOrganizationQuery(dto.SearchRequest{
		Industries:  []string{"Medical Devices"},
		Locations:   []string{"Boston", ""},
		CompanySize: &dto.Range{Min: int64p(10), Max: int64p(100)},
	})
	if !reflect.DeepEqual(q.Locations, []string{"Boston"}) {
		t.Fatalf("unexpected locations: %v", q.Locations)
	}
	if !reflect.DeepEqual(q.KeywordTags, []string{"medtech", "medical device"}) {
		t.Fatalf("unexpected tags: %v", q.KeywordTags)
	}
	if !reflect.DeepEqual(q.EmployeeRanges, []string{"10,100"}) {
		t.Fatalf("unexpected ranges: %v", q.EmployeeRanges)
	}
}

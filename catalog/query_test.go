package catalog

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/utils"
)

func TestMatchFiltersOnlyWhenSet(t *testing.T) {
	match := Match("", []string{"name"}, Filters{})
	if _, ok := match["tenantId"]; ok {
		t.Fatal("absent tenant filter must not appear")
	}
	if _, ok := match["isPublish"]; ok {
		t.Fatal("absent publish filter must not appear")
	}

	tenant := "T1"
	publish := false
	catID := primitive.NewObjectID()
	match = Match("", nil, Filters{TenantID: &tenant, CategoryID: &catID, IsPublish: &publish})

	if match["tenantId"] != "T1" {
		t.Fatalf("tenantId = %v", match["tenantId"])
	}
	if match["categoryId"] != catID {
		t.Fatalf("categoryId = %v", match["categoryId"])
	}
	// isPublish=false is a real filter, not an absent one
	if match["isPublish"] != false {
		t.Fatalf("isPublish = %v", match["isPublish"])
	}
}

func TestMatchTextPredicate(t *testing.T) {
	match := Match("margh", []string{"name"}, Filters{})
	regex, ok := match["name"].(primitive.Regex)
	if !ok {
		t.Fatalf("single field should be a direct regex, got %T", match["name"])
	}
	if regex.Options != "i" {
		t.Fatalf("match must be case-insensitive, got options %q", regex.Options)
	}

	match = Match("pizza", []string{"name", "description"}, Filters{})
	or, ok := match["$or"].(bson.A)
	if !ok {
		t.Fatalf("multiple fields should produce $or, got %T", match["$or"])
	}
	if len(or) != 2 {
		t.Fatalf("$or should cover both fields, got %d", len(or))
	}
}

func TestMatchEscapesRegexMetacharacters(t *testing.T) {
	match := Match("50% (off)", []string{"name"}, Filters{})
	regex := match["name"].(primitive.Regex)
	if regex.Pattern == "50% (off)" {
		t.Fatal("query must be treated as a literal substring, not a pattern")
	}
}

func TestSearchPipelineShape(t *testing.T) {
	pipeline := SearchPipeline("q", []string{"name"}, Filters{}, true)
	stages := stageNames(pipeline)
	want := []string{"$match", "$lookup", "$unwind", "$sort"}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stage %d = %s, want %s", i, stages[i], want[i])
		}
	}

	pipeline = SearchPipeline("q", []string{"name"}, Filters{}, false)
	stages = stageNames(pipeline)
	if len(stages) != 2 || stages[0] != "$match" || stages[1] != "$sort" {
		t.Fatalf("unjoined pipeline stages = %v", stages)
	}
}

func stageNames(pipeline []bson.D) []string {
	names := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestCategoryLookupPreservesMissingCategory(t *testing.T) {
	stages := CategoryLookup()
	unwind := stages[1][0].Value.(bson.M)
	if unwind["preserveNullAndEmptyArrays"] != true {
		t.Fatal("items with a dangling category reference must not drop out of joins")
	}
}

func TestSkip(t *testing.T) {
	cases := []struct {
		page, limit int
		want        int64
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 3, 12},
	}
	for _, c := range cases {
		if got := Skip(utils.PageQuery{Page: c.page, Limit: c.limit}); got != c.want {
			t.Errorf("Skip(page=%d, limit=%d) = %d, want %d", c.page, c.limit, got, c.want)
		}
	}
}

func TestSortNewestFirstIsStable(t *testing.T) {
	sort := SortNewestFirst()[0].Value.(bson.D)
	if sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Fatalf("primary sort = %v", sort[0])
	}
	if sort[1].Key != "_id" {
		t.Fatal("sort needs an _id tiebreak for stable paging")
	}
}

func TestParseFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?tenantId=T1&isPublish=true", nil)
	f, err := ParseFilters(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.TenantID == nil || *f.TenantID != "T1" {
		t.Fatalf("tenantId = %v", f.TenantID)
	}
	if f.IsPublish == nil || !*f.IsPublish {
		t.Fatalf("isPublish = %v", f.IsPublish)
	}
	if f.CategoryID != nil {
		t.Fatal("absent categoryId should stay nil")
	}

	r = httptest.NewRequest("GET", "/products?categoryId=zzz", nil)
	if _, err := ParseFilters(r); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("invalid categoryId should be Validation, got %v", err)
	}

	r = httptest.NewRequest("GET", "/products", nil)
	f, err = ParseFilters(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.TenantID != nil || f.CategoryID != nil || f.IsPublish != nil {
		t.Fatal("no params should mean no filters")
	}
}

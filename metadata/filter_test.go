package metadata

import (
	"math"
	"testing"
)

func mustBuild(t *testing.T, b *FilterBuilder) *Filter {
	t.Helper()
	f, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return f
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter *FilterBuilder
		doc    Document
		want   bool
	}{
		{
			name:   "equals string match",
			filter: NewFilterBuilder().WhereEquals("category", String("tech")),
			doc:    Document{"category": String("tech")},
			want:   true,
		},
		{
			name:   "equals string no match",
			filter: NewFilterBuilder().WhereEquals("category", String("tech")),
			doc:    Document{"category": String("sports")},
			want:   false,
		},
		{
			name:   "equals int cross-kind numeric",
			filter: NewFilterBuilder().WhereEquals("count", Float(10)),
			doc:    Document{"count": Int(10)},
			want:   true,
		},
		{
			name:   "equals bool",
			filter: NewFilterBuilder().WhereEquals("active", Bool(true)),
			doc:    Document{"active": Bool(true)},
			want:   true,
		},
		{
			name:   "equals null matches explicit null",
			filter: NewFilterBuilder().WhereEquals("deleted", Null()),
			doc:    Document{"deleted": Null()},
			want:   true,
		},
		{
			name:   "equals null does not match absent key",
			filter: NewFilterBuilder().WhereEquals("deleted", Null()),
			doc:    Document{"other": String("x")},
			want:   false,
		},
		{
			name:   "equals absent key",
			filter: NewFilterBuilder().WhereEquals("category", String("tech")),
			doc:    Document{},
			want:   false,
		},
		{
			name:   "equals kind mismatch",
			filter: NewFilterBuilder().WhereEquals("category", String("1")),
			doc:    Document{"category": Int(1)},
			want:   false,
		},
		{
			name:   "in match",
			filter: NewFilterBuilder().WhereIn("color", String("red"), String("blue")),
			doc:    Document{"color": String("blue")},
			want:   true,
		},
		{
			name:   "in no match",
			filter: NewFilterBuilder().WhereIn("color", String("red"), String("blue")),
			doc:    Document{"color": String("green")},
			want:   false,
		},
		{
			name:   "in absent key",
			filter: NewFilterBuilder().WhereIn("color", String("red")),
			doc:    Document{},
			want:   false,
		},
		{
			name:   "range inclusive lower bound",
			filter: NewFilterBuilder().WhereGreaterThanOrEqual("score", 10),
			doc:    Document{"score": Int(10)},
			want:   true,
		},
		{
			name:   "range exclusive lower bound",
			filter: NewFilterBuilder().WhereGreaterThan("score", 10),
			doc:    Document{"score": Int(10)},
			want:   false,
		},
		{
			name:   "range inclusive upper bound",
			filter: NewFilterBuilder().WhereLessThanOrEqual("score", 10),
			doc:    Document{"score": Float(10)},
			want:   true,
		},
		{
			name:   "range exclusive upper bound",
			filter: NewFilterBuilder().WhereLessThan("score", 10),
			doc:    Document{"score": Float(10)},
			want:   false,
		},
		{
			name: "range both bounds",
			filter: NewFilterBuilder().
				WhereGreaterThanOrEqual("createdAt", 1700000004000).
				WhereLessThan("createdAt", 1700200000000),
			doc:  Document{"createdAt": Int(1700000004000)},
			want: true,
		},
		{
			name: "range upper bound exclusive rejects boundary",
			filter: NewFilterBuilder().
				WhereGreaterThanOrEqual("createdAt", 1700000004000).
				WhereLessThan("createdAt", 1700200000000),
			doc:  Document{"createdAt": Int(1700200000000)},
			want: false,
		},
		{
			name:   "range rejects nan value below bound",
			filter: NewFilterBuilder().WhereGreaterThanOrEqual("score", 10),
			doc:    Document{"score": Float(math.NaN())},
			want:   false,
		},
		{
			name:   "range rejects nan value above bound",
			filter: NewFilterBuilder().WhereLessThan("score", 20),
			doc:    Document{"score": Float(math.NaN())},
			want:   false,
		},
		{
			name: "range rejects nan value between bounds",
			filter: NewFilterBuilder().
				WhereGreaterThanOrEqual("score", 10).
				WhereLessThan("score", 20),
			doc:  Document{"score": Float(math.NaN())},
			want: false,
		},
		{
			name:   "range non-numeric value",
			filter: NewFilterBuilder().WhereGreaterThan("score", 1),
			doc:    Document{"score": String("2")},
			want:   false,
		},
		{
			name:   "range absent key",
			filter: NewFilterBuilder().WhereGreaterThan("score", 1),
			doc:    Document{},
			want:   false,
		},
		{
			name: "all constraint kinds together",
			filter: NewFilterBuilder().
				WhereEquals("kind", String("event")).
				WhereIn("cameraNo", String("A02"), String("B01")).
				WhereGreaterThanOrEqual("createdAt", 100).
				WhereLessThanOrEqual("createdAt", 200),
			doc: Document{
				"kind":      String("event"),
				"cameraNo":  String("B01"),
				"createdAt": Int(150),
			},
			want: true,
		},
		{
			name:   "empty filter matches anything",
			filter: NewFilterBuilder(),
			doc:    Document{"whatever": Bool(false)},
			want:   true,
		},
		{
			name:   "empty filter matches empty document",
			filter: NewFilterBuilder(),
			doc:    nil,
			want:   true,
		},
		{
			name:   "non-empty filter never matches empty document",
			filter: NewFilterBuilder().WhereEquals("k", String("v")),
			doc:    nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustBuild(t, tt.filter)
			if got := f.Matches(tt.doc); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNilFilterMatchesEverything(t *testing.T) {
	var f *Filter
	if !f.Matches(Document{"k": String("v")}) {
		t.Error("nil filter should match every document")
	}
}

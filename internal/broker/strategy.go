package broker

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/databroker-go/databroker/internal/domain"
)

// Sorter applies ORDER BY for a list request's sort field. Implementations
// must ignore fields they do not recognize rather than fail the query.
type Sorter interface {
	ApplySort(db *gorm.DB, field string, descending bool) *gorm.DB
}

// Filterer applies WHERE conditions for a list request's filter clauses.
// Implementations must ignore clauses they do not recognize.
type Filterer interface {
	ApplyFilters(db *gorm.DB, filters []domain.Filter) *gorm.DB
}

// validColumnName matches only alphanumeric characters and underscores.
var validColumnName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// columnSorter is the default Sorter: sort fields are bound to database
// columns derived by reflection over T, and anything outside that allow list
// is silently ignored.
type columnSorter struct {
	columns map[string]string
}

// NewColumnSorter builds the default sort strategy for T.
func NewColumnSorter[T domain.Record]() Sorter {
	return &columnSorter{columns: columnsFor[T]()}
}

func (s *columnSorter) ApplySort(db *gorm.DB, field string, descending bool) *gorm.DB {
	col, ok := s.columns[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return db
	}
	if descending {
		return db.Order(col + " desc")
	}
	return db.Order(col + " asc")
}

// columnFilterer is the default Filterer: eq and like operators over the same
// reflection-derived column allow list the sorter uses.
type columnFilterer struct {
	columns map[string]string
}

// NewColumnFilterer builds the default filter strategy for T.
func NewColumnFilterer[T domain.Record]() Filterer {
	return &columnFilterer{columns: columnsFor[T]()}
}

func (f *columnFilterer) ApplyFilters(db *gorm.DB, filters []domain.Filter) *gorm.DB {
	for _, flt := range filters {
		col, ok := f.columns[strings.ToLower(strings.TrimSpace(flt.Field))]
		if !ok {
			continue
		}
		switch flt.Op {
		case "", domain.FilterEquals:
			db = db.Where(col+" = ?", flt.Value)
		case domain.FilterLike:
			db = db.Where(col+" LIKE ?", "%"+flt.Value+"%")
		default:
			// Unknown operator: skip the clause.
		}
	}
	return db
}

// columnsFor derives the sortable/filterable column set for T by reflecting
// over its exported fields: the gorm column tag when present, otherwise the
// snake-cased field name. Both the Go field name and the column name are
// accepted as request field names, case-insensitively. Embedded structs
// (such as domain.BaseRecord) are flattened; relation-shaped fields are
// skipped.
func columnsFor[T any]() map[string]string {
	columns := make(map[string]string)
	collectColumns(reflect.TypeFor[T](), columns)
	return columns
}

func collectColumns(t reflect.Type, columns map[string]string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	namer := schema.NamingStrategy{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous {
			collectColumns(f.Type, columns)
			continue
		}
		gormTag := f.Tag.Get("gorm")
		if gormTag == "-" {
			continue
		}
		if !isColumnKind(f.Type) {
			continue
		}

		col := columnFromTag(gormTag)
		if col == "" {
			col = namer.ColumnName("", f.Name)
		}
		if !validColumnName.MatchString(col) {
			continue
		}
		columns[strings.ToLower(f.Name)] = col
		columns[strings.ToLower(col)] = col
	}
}

// isColumnKind reports whether a field of this type maps to a plain database
// column (as opposed to an association or serialized blob).
func isColumnKind(t reflect.Type) bool {
	if t == reflect.TypeOf(time.Time{}) {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// columnFromTag extracts the column name from a gorm struct tag, if set.
func columnFromTag(tag string) string {
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if v, ok := strings.CutPrefix(part, "column:"); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

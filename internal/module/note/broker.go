package note

import (
	"context"
	"log/slog"
	"strconv"

	"gorm.io/gorm"

	"github.com/databroker-go/databroker/internal/broker"
	"github.com/databroker-go/databroker/internal/domain"
)

// RegisterOverrides installs the note-specific broker behavior: a filter
// strategy that understands boolean "archived" values, and a list handler
// that hides archived notes unless the request asks for them. Must be called
// before any Broker[domain.Note] is constructed from the registry.
func RegisterOverrides(reg *broker.Registry, factory broker.SessionFactory, logger *slog.Logger) {
	filterer := archivedFilterer{next: broker.NewColumnFilterer[domain.Note]()}
	broker.RegisterFilterer[domain.Note](reg, filterer)
	broker.RegisterListHandler[domain.Note](reg, listHandler{
		next: broker.NewListHandler[domain.Note](factory, broker.NewColumnSorter[domain.Note](), filterer, logger),
	})
}

// archivedFilterer handles "archived" clauses itself, converting the string
// value into a boolean so the comparison matches the stored 0/1, and
// delegates everything else to the default column filterer. Clauses with
// unparseable values are skipped, like any other unrecognized clause.
type archivedFilterer struct {
	next broker.Filterer
}

func (f archivedFilterer) ApplyFilters(db *gorm.DB, filters []domain.Filter) *gorm.DB {
	rest := make([]domain.Filter, 0, len(filters))
	for _, flt := range filters {
		if flt.Field != "archived" {
			rest = append(rest, flt)
			continue
		}
		if flt.Op != "" && flt.Op != domain.FilterEquals {
			continue
		}
		archived, err := strconv.ParseBool(flt.Value)
		if err != nil {
			continue
		}
		db = db.Where("archived = ?", archived)
	}
	return f.next.ApplyFilters(db, rest)
}

// listHandler excludes archived notes from list results unless the request
// filters on "archived" explicitly.
type listHandler struct {
	next broker.ListHandler[domain.Note]
}

func (h listHandler) HandleList(ctx context.Context, req *domain.ListRequest) (*domain.ListResult[domain.Note], error) {
	if req == nil || hasArchivedClause(req.Filters) {
		return h.next.HandleList(ctx, req)
	}

	scoped := *req
	scoped.Filters = append(append([]domain.Filter(nil), req.Filters...),
		domain.Filter{Field: "archived", Op: domain.FilterEquals, Value: "false"})
	return h.next.HandleList(ctx, &scoped)
}

func hasArchivedClause(filters []domain.Filter) bool {
	for _, flt := range filters {
		if flt.Field == "archived" {
			return true
		}
	}
	return false
}

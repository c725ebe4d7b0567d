package dataset

import (
	"context"
	"log/slog"

	"market-report/internal/database"
	"market-report/internal/errors"
)

// Sources names the three input files.
type Sources struct {
	Brands       string
	Independents string
	Population   string
}

type LoadStats struct {
	Rows map[string]int
}

// Loader reads the sources and replaces the relations in a store. A loader
// holds no state between runs; every Load fully replaces the relations.
type Loader struct {
	sources Sources
	logger  *slog.Logger
}

func NewLoader(sources Sources, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{sources: sources, logger: logger}
}

type pendingRelation struct {
	rel  database.Relation
	rows []database.Tuple
}

// Load parses all three sources before touching the store, so a malformed
// file aborts the run with the previous relations intact.
func (l *Loader) Load(ctx context.Context, db database.DatabaseDriver) (*LoadStats, error) {
	brandTable, err := ReadTable(l.sources.Brands)
	if err != nil {
		return nil, err
	}
	brands, err := ParseBrands(brandTable)
	if err != nil {
		return nil, err
	}

	indTable, err := ReadTable(l.sources.Independents)
	if err != nil {
		return nil, err
	}
	independents, err := ParseIndependents(indTable)
	if err != nil {
		return nil, err
	}

	popTable, err := ReadTable(l.sources.Population)
	if err != nil {
		return nil, err
	}
	population, err := ParsePopulation(popTable)
	if err != nil {
		return nil, err
	}

	pending := []pendingRelation{
		{GetBrandSchema(), tuplesOf(brands)},
		{GetIndependentSchema(), tuplesOf(independents)},
		{GetPopulationSchema(), tuplesOf(population)},
	}

	stats := &LoadStats{Rows: make(map[string]int, len(pending))}
	for _, p := range pending {
		if err := db.ReplaceRelation(ctx, p.rel, p.rows); err != nil {
			return nil, errors.StoreWrap(err, "replace relation").WithDetails("%s", p.rel.Name)
		}
		stats.Rows[p.rel.Name] = len(p.rows)
	}

	l.logger.Info("database initialized",
		BrandsRelation, stats.Rows[BrandsRelation],
		IndependentsRelation, stats.Rows[IndependentsRelation],
		PopulationRelation, stats.Rows[PopulationRelation],
	)
	return stats, nil
}

// Teardown drops the relations created by Load.
func (l *Loader) Teardown(ctx context.Context, db database.DatabaseDriver) error {
	if err := db.DropRelations(ctx, RelationNames()...); err != nil {
		return errors.StoreWrap(err, "drop relations")
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/freitasmatheusrn/liquid-catalog/internal/database"
	"github.com/freitasmatheusrn/liquid-catalog/pkg/parser"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository stores catalog generations. Every generation lives in its
// own rows; catalog_state points at the one being served.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ReplaceCatalog writes gen and makes it current in one transaction, then
// removes every other generation.
func (r *CatalogRepository) ReplaceCatalog(ctx context.Context, gen *catalog.Generation) error {
	genID := parser.PgUUID(gen.ID)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO catalog_generations (id, created_at) VALUES ($1, $2)`,
		genID, gen.CreatedAt,
	); err != nil {
		return wrap("insert generation", err)
	}

	copies := []struct {
		table   string
		columns []string
		rows    pgx.CopyFromSource
		n       int
	}{
		{"brands", []string{"generation_id", "id", "name"}, brandRows(genID, gen.Brands), len(gen.Brands)},
		{"tags", []string{"generation_id", "id", "name"}, tagRows(genID, gen.Tags), len(gen.Tags)},
		{"products", []string{"generation_id", "id", "name", "brand_id", "line_up", "availability_20mg", "availability_4560mg", "price"}, productRows(genID, gen.Products), len(gen.Products)},
		{"product_tags", []string{"generation_id", "product_id", "tag_id"}, linkRows(genID, gen.Links), len(gen.Links)},
		{"coil_brands", []string{"generation_id", "id", "name"}, coilBrandRows(genID, gen.CoilBrands), len(gen.CoilBrands)},
		{"resistances", []string{"generation_id", "id", "value"}, resistanceRows(genID, gen.Resistances), len(gen.Resistances)},
		{"coils", []string{"generation_id", "id", "brand_id", "resistance_id", "price"}, coilRows(genID, gen.Coils), len(gen.Coils)},
	}
	for _, c := range copies {
		if c.n == 0 {
			continue
		}
		copied, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, c.rows)
		if err != nil {
			return wrap("copy "+c.table, err)
		}
		if int(copied) != c.n {
			return fmt.Errorf("copy %s: wrote %d of %d rows", c.table, copied, c.n)
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO catalog_state (singleton, generation_id, swapped_at)
		VALUES (TRUE, $1, NOW())
		ON CONFLICT (singleton) DO UPDATE
		SET generation_id = EXCLUDED.generation_id, swapped_at = EXCLUDED.swapped_at`,
		genID,
	); err != nil {
		return wrap("swap generation", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_generations WHERE id <> $1`, genID); err != nil {
		return wrap("delete old generations", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrap("commit", err)
	}
	return nil
}

// LoadCurrent reads the served generation. It returns nil when no generation
// was ever stored.
func (r *CatalogRepository) LoadCurrent(ctx context.Context) (*catalog.Generation, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var genID pgtype.UUID
	var gen catalog.Generation
	err = tx.QueryRow(ctx, `
		SELECT g.id, g.created_at
		FROM catalog_state s
		JOIN catalog_generations g ON g.id = s.generation_id`,
	).Scan(&genID, &gen.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("read catalog state", err)
	}
	if gen.ID, err = parser.UUIDFromPg(genID); err != nil {
		return nil, err
	}

	if gen.Brands, err = queryAll(ctx, tx, `SELECT id, name FROM brands WHERE generation_id = $1 ORDER BY id`, genID,
		func(row pgx.CollectableRow) (catalog.Brand, error) {
			var b catalog.Brand
			err := row.Scan(&b.ID, &b.Name)
			return b, err
		}); err != nil {
		return nil, wrap("load brands", err)
	}

	if gen.Tags, err = queryAll(ctx, tx, `SELECT id, name FROM tags WHERE generation_id = $1 ORDER BY id`, genID,
		func(row pgx.CollectableRow) (catalog.Tag, error) {
			var t catalog.Tag
			err := row.Scan(&t.ID, &t.Name)
			return t, err
		}); err != nil {
		return nil, wrap("load tags", err)
	}

	if gen.Products, err = queryAll(ctx, tx, `
		SELECT id, name, brand_id, line_up, availability_20mg, availability_4560mg, price
		FROM products WHERE generation_id = $1 ORDER BY id`, genID,
		scanProduct); err != nil {
		return nil, wrap("load products", err)
	}

	if gen.Links, err = queryAll(ctx, tx, `
		SELECT product_id, tag_id FROM product_tags
		WHERE generation_id = $1 ORDER BY product_id, tag_id`, genID,
		func(row pgx.CollectableRow) (catalog.ProductTagLink, error) {
			var l catalog.ProductTagLink
			err := row.Scan(&l.ProductID, &l.TagID)
			return l, err
		}); err != nil {
		return nil, wrap("load product tags", err)
	}

	if gen.CoilBrands, err = queryAll(ctx, tx, `SELECT id, name FROM coil_brands WHERE generation_id = $1 ORDER BY id`, genID,
		func(row pgx.CollectableRow) (catalog.CoilBrand, error) {
			var b catalog.CoilBrand
			err := row.Scan(&b.ID, &b.Name)
			return b, err
		}); err != nil {
		return nil, wrap("load coil brands", err)
	}

	if gen.Resistances, err = queryAll(ctx, tx, `SELECT id, value FROM resistances WHERE generation_id = $1 ORDER BY id`, genID,
		func(row pgx.CollectableRow) (catalog.Resistance, error) {
			var res catalog.Resistance
			err := row.Scan(&res.ID, &res.Value)
			return res, err
		}); err != nil {
		return nil, wrap("load resistances", err)
	}

	if gen.Coils, err = queryAll(ctx, tx, `
		SELECT id, brand_id, resistance_id, price
		FROM coils WHERE generation_id = $1 ORDER BY id`, genID,
		func(row pgx.CollectableRow) (catalog.Coil, error) {
			var c catalog.Coil
			var price pgtype.Numeric
			if err := row.Scan(&c.ID, &c.BrandID, &c.ResistanceID, &price); err != nil {
				return c, err
			}
			d, err := parser.DecimalFromPg(price)
			c.Price = d
			return c, err
		}); err != nil {
		return nil, wrap("load coils", err)
	}

	return &gen, nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var p catalog.Product
	var a20, a4560 *int16
	var price pgtype.Numeric
	if err := row.Scan(&p.ID, &p.Name, &p.BrandID, &p.LineUp, &a20, &a4560, &price); err != nil {
		return p, err
	}
	var err error
	if p.Availability20mg, err = catalog.AvailabilityFromLegacy(widen(a20)); err != nil {
		return p, fmt.Errorf("product %d: %w", p.ID, err)
	}
	if p.Availability4560mg, err = catalog.AvailabilityFromLegacy(widen(a4560)); err != nil {
		return p, fmt.Errorf("product %d: %w", p.ID, err)
	}
	if p.Price, err = parser.DecimalFromPg(price); err != nil {
		return p, fmt.Errorf("product %d: %w", p.ID, err)
	}
	return p, nil
}

func queryAll[T any](ctx context.Context, tx pgx.Tx, sql string, genID pgtype.UUID, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := tx.Query(ctx, sql, genID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scan)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %s: %w", op, database.Describe(err), err)
}

func legacy(a catalog.Availability) *int16 {
	v := a.Legacy()
	if v == nil {
		return nil
	}
	n := int16(*v)
	return &n
}

func widen(v *int16) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func brandRows(genID pgtype.UUID, brands []catalog.Brand) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(brands), func(i int) ([]any, error) {
		return []any{genID, brands[i].ID, brands[i].Name}, nil
	})
}

func tagRows(genID pgtype.UUID, tags []catalog.Tag) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(tags), func(i int) ([]any, error) {
		return []any{genID, tags[i].ID, tags[i].Name}, nil
	})
}

func productRows(genID pgtype.UUID, products []catalog.Product) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(products), func(i int) ([]any, error) {
		p := products[i]
		price, err := parser.PgNumeric(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		return []any{genID, p.ID, p.Name, p.BrandID, p.LineUp, legacy(p.Availability20mg), legacy(p.Availability4560mg), price}, nil
	})
}

func linkRows(genID pgtype.UUID, links []catalog.ProductTagLink) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(links), func(i int) ([]any, error) {
		return []any{genID, links[i].ProductID, links[i].TagID}, nil
	})
}

func coilBrandRows(genID pgtype.UUID, brands []catalog.CoilBrand) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(brands), func(i int) ([]any, error) {
		return []any{genID, brands[i].ID, brands[i].Name}, nil
	})
}

func resistanceRows(genID pgtype.UUID, resistances []catalog.Resistance) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(resistances), func(i int) ([]any, error) {
		return []any{genID, resistances[i].ID, resistances[i].Value}, nil
	})
}

func coilRows(genID pgtype.UUID, coils []catalog.Coil) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(coils), func(i int) ([]any, error) {
		c := coils[i]
		price, err := parser.PgNumeric(c.Price)
		if err != nil {
			return nil, fmt.Errorf("coil %d: %w", c.ID, err)
		}
		return []any{genID, c.ID, c.BrandID, c.ResistanceID, price}, nil
	})
}

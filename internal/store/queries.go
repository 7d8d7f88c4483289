package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Pricing table queries.
const (
	queryGetPricingTable = `
		SELECT brand, model, assessment_deductions, issues, accessory_bonuses, updated_at
		FROM pricing_tables
		WHERE brand_key = $1 AND model_key = $2`

	queryUpsertPricingTable = `
		INSERT INTO pricing_tables (
			brand_key, model_key, brand, model,
			assessment_deductions, issues, accessory_bonuses, updated_at
		) VALUES (
			@brand_key, @model_key, @brand, @model,
			@assessment_deductions, @issues, @accessory_bonuses, now()
		)
		ON CONFLICT (brand_key, model_key) DO UPDATE SET
			brand = EXCLUDED.brand,
			model = EXCLUDED.model,
			assessment_deductions = EXCLUDED.assessment_deductions,
			issues = EXCLUDED.issues,
			accessory_bonuses = EXCLUDED.accessory_bonuses,
			updated_at = now()
		RETURNING updated_at`

	queryListPricingTables = `
		SELECT brand, model, assessment_deductions, issues, accessory_bonuses, updated_at
		FROM pricing_tables
		ORDER BY brand_key, model_key`
)

// Lens queries.
const (
	queryListLenses = `
		SELECT id, brand, name, price
		FROM lenses
		WHERE $1::text = '' OR lower(brand) = lower($1)
		ORDER BY brand, name`

	queryUpsertLens = `
		INSERT INTO lenses (id, brand, name, price, updated_at)
		VALUES (@id, @brand, @name, @price, now())
		ON CONFLICT (id) DO UPDATE SET
			brand = EXCLUDED.brand,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			updated_at = now()`
)

// Order queries.
const (
	queryInsertOrder = `
		INSERT INTO orders (id, session_id, category, brand, model, final_price, payload, created_at)
		VALUES (@id, @session_id, @category, @brand, @model, @final_price, @payload, @created_at)`

	queryGetOrder = `
		SELECT id, session_id, category, brand, model, final_price, payload, created_at
		FROM orders
		WHERE id = $1`
)

// System state.
const querySystemState = `
	SELECT
		(SELECT COUNT(*) FROM pricing_tables),
		(SELECT COUNT(*) FROM lenses),
		(SELECT COUNT(*) FROM orders),
		(SELECT COUNT(*) FROM orders WHERE created_at > now() - interval '24 hours')`

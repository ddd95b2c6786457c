package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storescope/storescope/app/brand"
)

var _ StoreRepository = (*SQLStoreRepository)(nil)

// SQLStoreRepository is the SQLite-backed store repository.
type SQLStoreRepository struct {
	db *DB
}

func NewSQLStoreRepository(db *DB) *SQLStoreRepository {
	return &SQLStoreRepository{db: db}
}

func (r *SQLStoreRepository) Enabled() bool {
	return true
}

// Save creates or replaces the persisted record for the context's store
// URL. Child collections are wholly replaced in one transaction.
func (r *SQLStoreRepository) Save(bc *brand.Context) (string, error) {
	metadata, err := json.Marshal(bc.Metadata)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRow(`SELECT id FROM store_insights WHERE store_url = ?`, bc.StoreURL).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		id = uuid.NewString()
		_, err = tx.Exec(`
			INSERT INTO store_insights (id, store_url, brand_name, brand_description, metadata, extracted_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, bc.StoreURL, bc.BrandName, bc.BrandDescription, string(metadata),
			bc.ExtractedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return "", fmt.Errorf("failed to insert store insight: %w", err)
		}
	case err != nil:
		return "", fmt.Errorf("failed to check existing store insight: %w", err)
	default:
		_, err = tx.Exec(`
			UPDATE store_insights
			SET brand_name = ?, brand_description = ?, metadata = ?, extracted_at = ?,
			    updated_at = datetime('now')
			WHERE id = ?
		`, bc.BrandName, bc.BrandDescription, string(metadata),
			bc.ExtractedAt.UTC().Format(time.RFC3339Nano), id)
		if err != nil {
			return "", fmt.Errorf("failed to update store insight: %w", err)
		}

		if err := deleteChildren(tx, id); err != nil {
			return "", err
		}
	}

	if err := insertChildren(tx, id, bc); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

func deleteChildren(tx *sql.Tx, insightID string) error {
	childTables := []string{
		"products", "policies", "faqs", "social_handles", "contact_infos", "important_links",
	}

	for _, table := range childTables {
		if _, err := tx.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE store_insight_id = ?", table), insightID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return nil
}

func insertChildren(tx *sql.Tx, insightID string, bc *brand.Context) error {
	if err := insertProducts(tx, insightID, "catalog", bc.ProductCatalog); err != nil {
		return err
	}
	if err := insertProducts(tx, insightID, "hero", bc.HeroProducts); err != nil {
		return err
	}

	policies := map[string]*brand.Policy{
		"privacy": bc.PrivacyPolicy,
		"return":  bc.ReturnPolicy,
		"refund":  bc.RefundPolicy,
	}
	for policyType, policy := range policies {
		if policy == nil {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO policies (store_insight_id, policy_type, title, content, url)
			VALUES (?, ?, ?, ?, ?)
		`, insightID, policyType, policy.Title, policy.Content, policy.URL)
		if err != nil {
			return fmt.Errorf("failed to insert %s policy: %w", policyType, err)
		}
	}

	for _, faq := range bc.FAQs {
		_, err := tx.Exec(`
			INSERT INTO faqs (store_insight_id, question, answer)
			VALUES (?, ?, ?)
		`, insightID, faq.Question, faq.Answer)
		if err != nil {
			return fmt.Errorf("failed to insert FAQ: %w", err)
		}
	}

	for _, handle := range bc.SocialHandles {
		_, err := tx.Exec(`
			INSERT INTO social_handles (store_insight_id, platform, url, handle)
			VALUES (?, ?, ?, ?)
		`, insightID, string(handle.Platform), handle.URL, handle.Handle)
		if err != nil {
			return fmt.Errorf("failed to insert social handle: %w", err)
		}
	}

	if !bc.ContactInfo.IsEmpty() {
		_, err := tx.Exec(`
			INSERT INTO contact_infos (store_insight_id, email, phone, address)
			VALUES (?, ?, ?, ?)
		`, insightID, bc.ContactInfo.Email, bc.ContactInfo.Phone, bc.ContactInfo.Address)
		if err != nil {
			return fmt.Errorf("failed to insert contact info: %w", err)
		}
	}

	for _, link := range bc.ImportantLinks {
		_, err := tx.Exec(`
			INSERT INTO important_links (store_insight_id, title, url, description)
			VALUES (?, ?, ?, ?)
		`, insightID, link.Title, link.URL, link.Description)
		if err != nil {
			return fmt.Errorf("failed to insert important link: %w", err)
		}
	}

	return nil
}

func insertProducts(tx *sql.Tx, insightID, placement string, products []brand.Product) error {
	for _, product := range products {
		images, err := json.Marshal(emptyIfNil(product.Images))
		if err != nil {
			return fmt.Errorf("failed to encode product images: %w", err)
		}
		tags, err := json.Marshal(emptyIfNil(product.Tags))
		if err != nil {
			return fmt.Errorf("failed to encode product tags: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO products (store_insight_id, placement, product_id, title, description,
			                      price, currency, images, url, available, tags, category)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, insightID, placement, product.ID, product.Title, product.Description,
			product.Price, product.Currency, string(images), product.URL,
			product.Available, string(tags), product.Category)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
	}

	return nil
}

// GetByURL returns the stored brand context for a store URL, or nil when
// none exists.
func (r *SQLStoreRepository) GetByURL(storeURL string) (*brand.Context, error) {
	row := r.db.QueryRow(`
		SELECT id, store_url, brand_name, brand_description, metadata, extracted_at
		FROM store_insights
		WHERE store_url = ?
	`, storeURL)

	bc, id, err := scanStoreInsight(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadChildren(id, bc); err != nil {
		return nil, err
	}

	return bc, nil
}

// ListAll returns every stored brand context.
func (r *SQLStoreRepository) ListAll() ([]*brand.Context, error) {
	rows, err := r.db.Query(`
		SELECT id, store_url, brand_name, brand_description, metadata, extracted_at
		FROM store_insights
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list store insights: %w", err)
	}
	defer rows.Close()

	var insights []*brand.Context
	var ids []string

	for rows.Next() {
		bc, id, err := scanStoreInsight(rows)
		if err != nil {
			return nil, err
		}
		insights = append(insights, bc)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate store insights: %w", err)
	}

	for i, bc := range insights {
		if err := r.loadChildren(ids[i], bc); err != nil {
			return nil, err
		}
	}

	return insights, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStoreInsight(row rowScanner) (*brand.Context, string, error) {
	var id, storeURL, brandName, brandDescription, metadata, extractedAt string

	err := row.Scan(&id, &storeURL, &brandName, &brandDescription, &metadata, &extractedAt)
	if err == sql.ErrNoRows {
		return nil, "", err
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan store insight: %w", err)
	}

	bc := &brand.Context{
		StoreURL:         storeURL,
		BrandName:        brandName,
		BrandDescription: brandDescription,
		Metadata:         make(map[string]any),
	}

	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &bc.Metadata); err != nil {
			return nil, "", fmt.Errorf("failed to decode metadata: %w", err)
		}
	}

	if ts, err := time.Parse(time.RFC3339Nano, extractedAt); err == nil {
		bc.ExtractedAt = ts
	}

	return bc, id, nil
}

func (r *SQLStoreRepository) loadChildren(insightID string, bc *brand.Context) error {
	if err := r.loadProducts(insightID, bc); err != nil {
		return err
	}
	if err := r.loadPolicies(insightID, bc); err != nil {
		return err
	}
	if err := r.loadFAQs(insightID, bc); err != nil {
		return err
	}
	if err := r.loadSocialHandles(insightID, bc); err != nil {
		return err
	}
	if err := r.loadContactInfo(insightID, bc); err != nil {
		return err
	}
	return r.loadImportantLinks(insightID, bc)
}

func (r *SQLStoreRepository) loadProducts(insightID string, bc *brand.Context) error {
	rows, err := r.db.Query(`
		SELECT placement, product_id, title, description, price, currency,
		       images, url, available, tags, category
		FROM products
		WHERE store_insight_id = ?
		ORDER BY id
	`, insightID)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var placement, images, tags string
		var product brand.Product

		err := rows.Scan(&placement, &product.ID, &product.Title, &product.Description,
			&product.Price, &product.Currency, &images, &product.URL,
			&product.Available, &tags, &product.Category)
		if err != nil {
			return fmt.Errorf("failed to scan product: %w", err)
		}

		if err := json.Unmarshal([]byte(images), &product.Images); err != nil {
			return fmt.Errorf("failed to decode product images: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &product.Tags); err != nil {
			return fmt.Errorf("failed to decode product tags: %w", err)
		}

		if placement == "hero" {
			bc.HeroProducts = append(bc.HeroProducts, product)
		} else {
			bc.ProductCatalog = append(bc.ProductCatalog, product)
		}
	}

	return rows.Err()
}

func (r *SQLStoreRepository) loadPolicies(insightID string, bc *brand.Context) error {
	rows, err := r.db.Query(`
		SELECT policy_type, title, content, url
		FROM policies
		WHERE store_insight_id = ?
	`, insightID)
	if err != nil {
		return fmt.Errorf("failed to load policies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var policyType string
		policy := &brand.Policy{}

		if err := rows.Scan(&policyType, &policy.Title, &policy.Content, &policy.URL); err != nil {
			return fmt.Errorf("failed to scan policy: %w", err)
		}

		switch policyType {
		case "privacy":
			bc.PrivacyPolicy = policy
		case "return":
			bc.ReturnPolicy = policy
		case "refund":
			bc.RefundPolicy = policy
		}
	}

	return rows.Err()
}

func (r *SQLStoreRepository) loadFAQs(insightID string, bc *brand.Context) error {
	rows, err := r.db.Query(`
		SELECT question, answer FROM faqs WHERE store_insight_id = ? ORDER BY id
	`, insightID)
	if err != nil {
		return fmt.Errorf("failed to load FAQs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var faq brand.FAQ
		if err := rows.Scan(&faq.Question, &faq.Answer); err != nil {
			return fmt.Errorf("failed to scan FAQ: %w", err)
		}
		bc.FAQs = append(bc.FAQs, faq)
	}

	return rows.Err()
}

func (r *SQLStoreRepository) loadSocialHandles(insightID string, bc *brand.Context) error {
	rows, err := r.db.Query(`
		SELECT platform, url, handle FROM social_handles WHERE store_insight_id = ? ORDER BY id
	`, insightID)
	if err != nil {
		return fmt.Errorf("failed to load social handles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var platform string
		var handle brand.SocialHandle

		if err := rows.Scan(&platform, &handle.URL, &handle.Handle); err != nil {
			return fmt.Errorf("failed to scan social handle: %w", err)
		}

		handle.Platform = brand.Platform(platform)
		bc.SocialHandles = append(bc.SocialHandles, handle)
	}

	return rows.Err()
}

func (r *SQLStoreRepository) loadContactInfo(insightID string, bc *brand.Context) error {
	err := r.db.QueryRow(`
		SELECT email, phone, address FROM contact_infos WHERE store_insight_id = ?
	`, insightID).Scan(&bc.ContactInfo.Email, &bc.ContactInfo.Phone, &bc.ContactInfo.Address)

	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load contact info: %w", err)
	}

	return nil
}

func (r *SQLStoreRepository) loadImportantLinks(insightID string, bc *brand.Context) error {
	rows, err := r.db.Query(`
		SELECT title, url, description FROM important_links WHERE store_insight_id = ? ORDER BY id
	`, insightID)
	if err != nil {
		return fmt.Errorf("failed to load important links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var link brand.ImportantLink
		if err := rows.Scan(&link.Title, &link.URL, &link.Description); err != nil {
			return fmt.Errorf("failed to scan important link: %w", err)
		}
		bc.ImportantLinks = append(bc.ImportantLinks, link)
	}

	return rows.Err()
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

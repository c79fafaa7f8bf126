package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization and membership data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

// SaveOrganization persists a new organization. Settings are stored as JSONB.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	settings, err := json.Marshal(org.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal organization settings: %w", err)
	}
	query := `
		INSERT INTO organizations (
			organization_id, name, tax_id, timezone, base_currency, settings,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = r.Pool.Exec(ctx, query,
		org.OrganizationID, org.Name, org.TaxID, org.Timezone, org.BaseCurrency, settings,
		org.CreatedAt, org.CreatedBy, org.LastUpdatedAt, org.LastUpdatedBy,
	)
	return translateError(err, "save organization")
}

// FindOrganizationByID retrieves a specific organization by its unique identifier.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, tax_id, timezone, base_currency, settings,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var org domain.Organization
	var settings []byte
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&org.OrganizationID, &org.Name, &org.TaxID, &org.Timezone, &org.BaseCurrency, &settings,
		&org.CreatedAt, &org.CreatedBy, &org.LastUpdatedAt, &org.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "find organization "+organizationID)
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &org.Settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal organization settings: %w", err)
		}
	}
	return &org, nil
}

// ListOrganizations retrieves a paginated list of organizations.
func (r *PgxOrganizationRepository) ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error) {
	query := `
		SELECT organization_id, name, tax_id, timezone, base_currency, settings,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		ORDER BY created_at
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err, "list organizations")
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var org domain.Organization
		var settings []byte
		if err := rows.Scan(
			&org.OrganizationID, &org.Name, &org.TaxID, &org.Timezone, &org.BaseCurrency, &settings,
			&org.CreatedAt, &org.CreatedBy, &org.LastUpdatedAt, &org.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan organization row: %w", err)
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &org.Settings); err != nil {
				return nil, fmt.Errorf("failed to unmarshal organization settings: %w", err)
			}
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

// UpdateOrganization updates an existing organization's details and settings.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	settings, err := json.Marshal(org.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal organization settings: %w", err)
	}
	query := `
		UPDATE organizations
		SET name = $2, tax_id = $3, timezone = $4, settings = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE organization_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		org.OrganizationID, org.Name, org.TaxID, org.Timezone, settings,
		org.LastUpdatedAt, org.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "update organization "+org.OrganizationID)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "update organization "+org.OrganizationID)
	}
	return nil
}

// DeleteOrganization removes an organization and, by cascade, everything it owns.
func (r *PgxOrganizationRepository) DeleteOrganization(ctx context.Context, organizationID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM organizations WHERE organization_id = $1;`, organizationID)
	if err != nil {
		return translateError(err, "delete organization "+organizationID)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "delete organization "+organizationID)
	}
	return nil
}

// SaveMember persists a new membership.
func (r *PgxOrganizationRepository) SaveMember(ctx context.Context, member domain.OrganizationMember) error {
	query := `
		INSERT INTO organization_members (member_id, organization_id, user_id, role, is_active, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		member.MemberID, member.OrganizationID, member.UserID, member.Role, member.IsActive, member.JoinedAt,
	)
	return translateError(err, "save member")
}

// FindMember retrieves the membership of a user in an organization.
func (r *PgxOrganizationRepository) FindMember(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error) {
	query := `
		SELECT member_id, organization_id, user_id, role, is_active, joined_at
		FROM organization_members
		WHERE organization_id = $1 AND user_id = $2;
	`
	var m domain.OrganizationMember
	err := r.Pool.QueryRow(ctx, query, organizationID, userID).Scan(
		&m.MemberID, &m.OrganizationID, &m.UserID, &m.Role, &m.IsActive, &m.JoinedAt,
	)
	if err != nil {
		return nil, translateError(err, "find member")
	}
	return &m, nil
}

// ListMembers retrieves all memberships of an organization.
func (r *PgxOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.OrganizationMember, error) {
	query := `
		SELECT member_id, organization_id, user_id, role, is_active, joined_at
		FROM organization_members
		WHERE organization_id = $1
		ORDER BY joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, translateError(err, "list members")
	}
	defer rows.Close()

	var members []domain.OrganizationMember
	for rows.Next() {
		var m domain.OrganizationMember
		if err := rows.Scan(&m.MemberID, &m.OrganizationID, &m.UserID, &m.Role, &m.IsActive, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// UpdateMember updates a membership's role or active flag.
func (r *PgxOrganizationRepository) UpdateMember(ctx context.Context, member domain.OrganizationMember) error {
	query := `
		UPDATE organization_members
		SET role = $2, is_active = $3
		WHERE member_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, member.MemberID, member.Role, member.IsActive)
	if err != nil {
		return translateError(err, "update member "+member.MemberID)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "update member "+member.MemberID)
	}
	return nil
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/core/services"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

type AssetServiceTestSuite struct {
	suite.Suite
	mockAssetRepo  *MockAssetRepository
	mockNumbering  *MockNumberingRepository
	mockJournalSvc *MockJournalService
	mockAuthorizer *MockAuthorizer
	service        portssvc.AssetSvc
	orgID          string
	actorID        string
	asset          domain.FixedAsset
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockNumbering = new(MockNumberingRepository)
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewAssetService(suite.mockAssetRepo, suite.mockNumbering, suite.mockJournalSvc, suite.mockAuthorizer)

	suite.orgID = uuid.NewString()
	suite.actorID = uuid.NewString()
	// 3600.00 over 36 months depreciates at a flat 100.00 per period.
	suite.asset = domain.FixedAsset{
		AssetID:            uuid.NewString(),
		OrganizationID:     suite.orgID,
		Name:               "Delivery van",
		Reference:          "FA-000001",
		PurchaseDate:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		PurchasePrice:      decimal.RequireFromString("3600.00"),
		SalvageValue:       decimal.Zero,
		UsefulLifeMonths:   36,
		DepreciationMethod: domain.StraightLine,
	}

	suite.mockAuthorizer.On("AuthorizeAction", mock.Anything, suite.actorID, suite.orgID, mock.Anything).Return(nil).Maybe()
}

func (suite *AssetServiceTestSuite) TestRegisterAsset_AssignsReference() {
	ctx := context.Background()
	req := dto.RegisterAssetRequest{
		Name:             "Delivery van",
		PurchaseDate:     suite.asset.PurchaseDate,
		PurchasePrice:    suite.asset.PurchasePrice,
		SalvageValue:     decimal.Zero,
		UsefulLifeMonths: 36,
	}

	suite.mockNumbering.On("NextDocumentNumber", ctx, suite.orgID, domain.DocumentAsset).Return("FA-000007", nil).Once()
	suite.mockAssetRepo.On("SaveAsset", ctx, mock.MatchedBy(func(asset domain.FixedAsset) bool {
		return asset.Reference == "FA-000007" &&
			asset.DepreciationMethod == domain.StraightLine &&
			asset.CreatedBy == suite.actorID
	})).Return(nil).Once()

	asset, err := suite.service.RegisterAsset(ctx, suite.orgID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("FA-000007", asset.Reference)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestRegisterAsset_SalvageExceedsPrice() {
	ctx := context.Background()
	req := dto.RegisterAssetRequest{
		Name:             "Delivery van",
		PurchaseDate:     suite.asset.PurchaseDate,
		PurchasePrice:    decimal.RequireFromString("1000.00"),
		SalvageValue:     decimal.RequireFromString("1500.00"),
		UsefulLifeMonths: 36,
	}

	asset, err := suite.service.RegisterAsset(ctx, suite.orgID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(asset)
	var validationErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal("asset.salvage_value", validationErr.Rule)
	suite.mockNumbering.AssertNotCalled(suite.T(), "NextDocumentNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestPostDepreciation_CreatesBalancedEntry() {
	ctx := context.Background()
	expenseAccountID := uuid.NewString()
	accumulatedAccountID := uuid.NewString()
	req := dto.PostDepreciationRequest{
		Sequence:                1,
		ExpenseAccountID:        expenseAccountID,
		AccumulatedDepAccountID: accumulatedAccountID,
	}
	monthly := decimal.RequireFromString("100.00")
	postedEntry := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.orgID,
		Status:         domain.Posted,
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.orgID, suite.asset.AssetID).Return(&suite.asset, nil).Once()
	suite.mockAssetRepo.On("FindDepreciationPostings", ctx, suite.orgID, suite.asset.AssetID).Return(map[int]string{}, nil).Once()
	suite.mockJournalSvc.On("CreateJournalEntry", ctx, suite.orgID, mock.MatchedBy(func(entryReq dto.CreateJournalEntryRequest) bool {
		return entryReq.Reference == suite.asset.Reference &&
			len(entryReq.Lines) == 2 &&
			entryReq.Lines[0].AccountID == expenseAccountID &&
			entryReq.Lines[0].DC == domain.DebitLine &&
			entryReq.Lines[0].Amount.Equal(monthly) &&
			entryReq.Lines[1].AccountID == accumulatedAccountID &&
			entryReq.Lines[1].DC == domain.CreditLine &&
			entryReq.Lines[1].Amount.Equal(monthly)
	}), suite.actorID).Return(postedEntry, nil).Once()
	// The posting record rides in the posting transaction as a companion.
	companion := &stubCompanion{name: "depreciation"}
	suite.mockAssetRepo.On("DepreciationInsertOnPost", suite.orgID, suite.asset.AssetID, 1, postedEntry.EntryID).Return(companion).Once()
	suite.mockJournalSvc.On("PostJournalEntry", ctx, suite.orgID, postedEntry.EntryID, suite.actorID, companion).Return(postedEntry, nil).Once()

	entry, err := suite.service.PostDepreciation(ctx, suite.orgID, suite.asset.AssetID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(postedEntry.EntryID, entry.EntryID)
	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestPostDepreciation_FailedPostingLeavesNoRecord() {
	ctx := context.Background()
	req := dto.PostDepreciationRequest{
		Sequence:                1,
		ExpenseAccountID:        uuid.NewString(),
		AccumulatedDepAccountID: uuid.NewString(),
	}
	draftEntry := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.orgID,
		Status:         domain.Draft,
	}
	companion := &stubCompanion{name: "depreciation"}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.orgID, suite.asset.AssetID).Return(&suite.asset, nil).Once()
	suite.mockAssetRepo.On("FindDepreciationPostings", ctx, suite.orgID, suite.asset.AssetID).Return(map[int]string{}, nil).Once()
	suite.mockJournalSvc.On("CreateJournalEntry", ctx, suite.orgID, mock.Anything, suite.actorID).Return(draftEntry, nil).Once()
	suite.mockAssetRepo.On("DepreciationInsertOnPost", suite.orgID, suite.asset.AssetID, 1, draftEntry.EntryID).Return(companion).Once()
	// A failed posting rolls back both the ledger movement and the period
	// record, so a retry is clean rather than double-counted.
	suite.mockJournalSvc.On("PostJournalEntry", ctx, suite.orgID, draftEntry.EntryID, suite.actorID, companion).
		Return(nil, errors.New("deadlock detected")).Once()

	entry, err := suite.service.PostDepreciation(ctx, suite.orgID, suite.asset.AssetID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestPostDepreciation_AlreadyPostedPeriod() {
	ctx := context.Background()
	req := dto.PostDepreciationRequest{
		Sequence:                3,
		ExpenseAccountID:        uuid.NewString(),
		AccumulatedDepAccountID: uuid.NewString(),
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.orgID, suite.asset.AssetID).Return(&suite.asset, nil).Once()
	suite.mockAssetRepo.On("FindDepreciationPostings", ctx, suite.orgID, suite.asset.AssetID).
		Return(map[int]string{3: uuid.NewString()}, nil).Once()

	entry, err := suite.service.PostDepreciation(ctx, suite.orgID, suite.asset.AssetID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestPostDepreciation_SequenceOutOfRange() {
	ctx := context.Background()
	req := dto.PostDepreciationRequest{
		Sequence:                99,
		ExpenseAccountID:        uuid.NewString(),
		AccumulatedDepAccountID: uuid.NewString(),
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.orgID, suite.asset.AssetID).Return(&suite.asset, nil).Once()

	entry, err := suite.service.PostDepreciation(ctx, suite.orgID, suite.asset.AssetID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	var validationErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal("depreciation.sequence", validationErr.Rule)
}

func (suite *AssetServiceTestSuite) TestDepreciationSchedule_MarksPostedPeriods() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.orgID, suite.asset.AssetID).Return(&suite.asset, nil).Once()
	suite.mockAssetRepo.On("FindDepreciationPostings", ctx, suite.orgID, suite.asset.AssetID).
		Return(map[int]string{2: entryID}, nil).Once()

	schedule, err := suite.service.DepreciationSchedule(ctx, suite.orgID, suite.asset.AssetID, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(schedule, 36)
	suite.False(schedule[0].Posted)
	suite.True(schedule[1].Posted)
	suite.Require().NotNil(schedule[1].EntryID)
	suite.Equal(entryID, *schedule[1].EntryID)
}

func TestAssetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}

package services_test

import (
	"context"
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
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockLedgerRepo    *MockLedgerRepository
	mockAuthorizer    *MockAuthorizer
	service           portssvc.ReportingSvc
	orgID             string
	actorID           string
	periodStart       time.Time
	periodEnd         time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockLedgerRepo, suite.mockAuthorizer)

	suite.orgID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.periodStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.periodEnd = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) accountSummary(code, name string, accountType domain.AccountType, closing string) domain.AccountSummary {
	return domain.AccountSummary{
		Summary: domain.LedgerSummary{
			SummaryID:      uuid.NewString(),
			OrganizationID: suite.orgID,
			AccountID:      uuid.NewString(),
			PeriodStart:    suite.periodStart,
			PeriodEnd:      suite.periodEnd,
			ClosingBalance: decimal.RequireFromString(closing),
		},
		AccountCode: code,
		AccountName: name,
		AccountType: accountType,
	}
}

func (suite *ReportingServiceTestSuite) TestGenerateReport_BalanceSheetExcludesPL() {
	ctx := context.Background()
	summaries := []domain.AccountSummary{
		suite.accountSummary("1000", "Cash", domain.Asset, "5000.00"),
		suite.accountSummary("2000", "Accounts Payable", domain.Liability, "1200.00"),
		suite.accountSummary("4000", "Sales Revenue", domain.Income, "3800.00"),
	}

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAuditor).Return(nil).Once()
	suite.mockLedgerRepo.On("SummariesOverlapping", ctx, suite.orgID, suite.periodStart, suite.periodEnd).Return(summaries, nil).Once()
	suite.mockReportingRepo.On("SaveReport", ctx, mock.AnythingOfType("domain.Report")).Return(nil).Once()

	report, err := suite.service.GenerateReport(ctx, suite.orgID, domain.BalanceSheet, suite.periodStart, suite.periodEnd, suite.actorID)

	suite.Require().NoError(err)
	suite.Len(report.Data[domain.Asset], 1)
	suite.Len(report.Data[domain.Liability], 1)
	suite.NotContains(report.Data, domain.Income)
	suite.Equal("Cash", report.Data[domain.Asset][0].AccountName)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGenerateReport_TrialBalanceIncludesAllTypes() {
	ctx := context.Background()
	summaries := []domain.AccountSummary{
		suite.accountSummary("1000", "Cash", domain.Asset, "5000.00"),
		suite.accountSummary("4000", "Sales Revenue", domain.Income, "3800.00"),
		suite.accountSummary("5000", "Operating Expenses", domain.Expense, "700.00"),
	}

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAuditor).Return(nil).Once()
	suite.mockLedgerRepo.On("SummariesOverlapping", ctx, suite.orgID, suite.periodStart, suite.periodEnd).Return(summaries, nil).Once()
	suite.mockReportingRepo.On("SaveReport", ctx, mock.AnythingOfType("domain.Report")).Return(nil).Once()

	report, err := suite.service.GenerateReport(ctx, suite.orgID, domain.TrialBalance, suite.periodStart, suite.periodEnd, suite.actorID)

	suite.Require().NoError(err)
	suite.Len(report.Data, 3)
}

func (suite *ReportingServiceTestSuite) TestGenerateReport_UnknownType() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAuditor).Return(nil).Once()

	_, err := suite.service.GenerateReport(ctx, suite.orgID, domain.ReportType("quarterly_vibes"), suite.periodStart, suite.periodEnd, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SummariesOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGenerateReport_AuthorizationFail() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAuditor).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.GenerateReport(ctx, suite.orgID, domain.BalanceSheet, suite.periodStart, suite.periodEnd, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_PassesThrough() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1000", AccountName: "Cash", AccountType: domain.Asset,
			Debit: decimal.RequireFromString("1000.00"), Credit: decimal.Zero},
		{AccountCode: "4000", AccountName: "Sales Revenue", AccountType: domain.Income,
			Debit: decimal.Zero, Credit: decimal.RequireFromString("1000.00")},
	}

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAuditor).Return(nil).Once()
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.orgID, suite.periodStart, suite.periodEnd).Return(rows, nil).Once()

	got, err := suite.service.TrialBalance(ctx, suite.orgID, suite.periodStart, suite.periodEnd, suite.actorID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.True(got[0].Debit.Equal(got[1].Credit))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/core/services"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.AccountSvcFacade
	orgID           string
	actorID         string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockJournalRepo, suite.mockAuthorizer)

	suite.orgID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.orgID, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("1000", account.Code)
	suite.True(account.IsPostable) // defaults to postable when omitted
	suite.Equal(suite.actorID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	existing := &domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.orgID, Code: "1000"}

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.orgID, "1000").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:            "1100",
		Name:            "Accounts Receivable",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
	}
	parent := &domain.Account{
		AccountID:      parentID,
		OrganizationID: suite.orgID,
		Code:           "4000",
		AccountType:    domain.Income,
	}

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.orgID, "1100").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, parentID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.actorID)

	suite.Require().Error(err)
	var vErr *apperrors.ValidationError
	suite.ErrorAs(err, &vErr)
	suite.Equal("account.parent_type", vErr.Rule)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ParentCannotBecomePostable() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.orgID,
		Code:           "1000",
		AccountType:    domain.Asset,
		IsPostable:     false,
	}
	child := domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.orgID, Code: "1010"}
	postable := true

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("ListChildAccounts", ctx, suite.orgID, accountID).Return([]domain.Account{child}, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.orgID, accountID, dto.UpdateAccountRequest{IsPostable: &postable}, suite.actorID)

	suite.Require().Error(err)
	var vErr *apperrors.ValidationError
	suite.ErrorAs(err, &vErr)
	suite.Equal("account.postable_parent", vErr.Rule)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ReferencedByJournalLines() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("CountLinesByAccount", ctx, suite.orgID, accountID).Return(int64(3), nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.orgID, accountID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Unreferenced() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeAction", ctx, suite.actorID, suite.orgID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("CountLinesByAccount", ctx, suite.orgID, accountID).Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("ListChildAccounts", ctx, suite.orgID, accountID).Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, suite.orgID, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.orgID, accountID, suite.actorID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestAccountFullName_WalksAncestry() {
	ctx := context.Background()
	rootID := uuid.NewString()
	childID := uuid.NewString()
	root := &domain.Account{AccountID: rootID, OrganizationID: suite.orgID, Code: "1000", Name: "Assets"}
	child := &domain.Account{AccountID: childID, OrganizationID: suite.orgID, Code: "1010", Name: "Cash", ParentAccountID: &rootID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, childID).Return(child, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, rootID).Return(root, nil).Once()

	name, err := suite.service.AccountFullName(ctx, suite.orgID, childID)

	suite.Require().NoError(err)
	suite.Equal("Assets > Cash", name)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

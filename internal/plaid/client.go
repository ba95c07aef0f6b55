package plaid

import (
	"context"
	"fmt"
	"strings"

	"github.com/plaid/plaid-go/v27/plaid"
	"github.com/valeriaulyamaeva/wisely-backend/internal/config"
)

const clientName = "Wisely"

// Институт подставляется как в песочнице Plaid: фиксированный id,
// при недоступности справочника — запасное имя.
const sandboxInstitutionID = "ins_109508"
const fallbackInstitution = "Plaid Sandbox"

// Client — тонкая обёртка над SDK агрегатора: link token, обмен токенов,
// выгрузка транзакций. Никакой собственной логики кроме маппинга ошибок.
type Client struct {
	api          *plaid.APIClient
	products     []plaid.Products
	countryCodes []plaid.CountryCode
	webhookURL   string
}

func New(cfg *config.Config) *Client {
	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.PlaidClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.PlaidSecret)
	if strings.EqualFold(cfg.PlaidEnv, "production") {
		configuration.UseEnvironment(plaid.Production)
	} else {
		configuration.UseEnvironment(plaid.Sandbox)
	}

	var products []plaid.Products
	for _, p := range strings.Split(cfg.PlaidProducts, ",") {
		products = append(products, plaid.Products(strings.TrimSpace(p)))
	}
	var countryCodes []plaid.CountryCode
	for _, cc := range strings.Split(cfg.PlaidCountryCodes, ",") {
		countryCodes = append(countryCodes, plaid.CountryCode(strings.TrimSpace(cc)))
	}

	return &Client{
		api:          plaid.NewAPIClient(configuration),
		products:     products,
		countryCodes: countryCodes,
		webhookURL:   cfg.PlaidWebhookURL,
	}
}

// CreateLinkToken создаёт короткоживущий link token для Plaid Link.
func (c *Client) CreateLinkToken(clientUserID string) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{ClientUserId: clientUserID}
	request := plaid.NewLinkTokenCreateRequest(clientName, "en", c.countryCodes, user)
	request.SetProducts(c.products)
	if c.webhookURL != "" {
		request.SetWebhook(c.webhookURL)
	}

	resp, _, err := c.api.PlaidApi.LinkTokenCreate(context.Background()).
		LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", fmt.Errorf("ошибка создания link token: %v", err)
	}
	return resp.GetLinkToken(), nil
}

// ExchangePublicToken меняет public_token на долговременный access token.
func (c *Client) ExchangePublicToken(publicToken string) (accessToken, itemID string, err error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := c.api.PlaidApi.ItemPublicTokenExchange(context.Background()).
		ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return "", "", fmt.Errorf("ошибка обмена public token: %v", err)
	}
	return resp.GetAccessToken(), resp.GetItemId(), nil
}

// GetInstitution возвращает название банка; при ошибке — запасное имя,
// привязка из-за этого не падает.
func (c *Client) GetInstitution() string {
	request := plaid.NewInstitutionsGetByIdRequest(sandboxInstitutionID, c.countryCodes)
	resp, _, err := c.api.PlaidApi.InstitutionsGetById(context.Background()).
		InstitutionsGetByIdRequest(*request).Execute()
	if err != nil {
		return fallbackInstitution
	}
	return resp.GetInstitution().Name
}

// FetchTransactions выгружает транзакции за окно дат (формат YYYY-MM-DD).
// PRODUCT_NOT_READY — не ошибка: данные ещё готовятся, отдаём пустой список.
func (c *Client) FetchTransactions(accessToken, startDate, endDate string) ([]plaid.Transaction, error) {
	request := plaid.NewTransactionsGetRequest(accessToken, startDate, endDate)
	resp, _, err := c.api.PlaidApi.TransactionsGet(context.Background()).
		TransactionsGetRequest(*request).Execute()
	if err != nil {
		if plaidErr, convErr := plaid.ToPlaidError(err); convErr == nil {
			switch plaidErr.ErrorCode {
			case "PRODUCT_NOT_READY":
				return nil, nil
			case "INVALID_API_KEYS":
				return nil, fmt.Errorf("неверные учётные данные Plaid, проверьте PLAID_CLIENT_ID и PLAID_SECRET")
			}
		}
		return nil, fmt.Errorf("ошибка выгрузки транзакций: %v", err)
	}
	return resp.GetTransactions(), nil
}

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase"
	"autopro_rental/internal/usecase/interfaces"
)

const (
	defaultBaseURL = "https://api.insee.fr/entreprises/sirene/V3.11"
	defaultAuthURL = "https://api.insee.fr/token"
	requestTimeout = 30 * time.Second
)

var (
	sirenPattern = regexp.MustCompile(`^\d{9}$`)
	siretPattern = regexp.MustCompile(`^\d{14}$`)
)

// INSEEClient queries the Sirene registry over its OAuth2-protected REST API.
//
// Credentials come from INSEE_CONSUMER_KEY / INSEE_CONSUMER_SECRET. Without
// them the client degrades to offline mode: checksums still validate, and
// lookups answer with the identifier plus the derived VAT number so the form
// prefill keeps working.

type INSEEClient struct {
	httpClient     *http.Client
	baseURL        string
	authURL        string
	consumerKey    string
	consumerSecret string

	mu             sync.Mutex
	accessToken    string
	tokenExpiresAt time.Time
}

var _ interfaces.IBusinessRegistry = (*INSEEClient)(nil)

func NewINSEEClient() *INSEEClient {
	c := &INSEEClient{
		httpClient:     &http.Client{Timeout: requestTimeout},
		baseURL:        defaultBaseURL,
		authURL:        defaultAuthURL,
		consumerKey:    os.Getenv("INSEE_CONSUMER_KEY"),
		consumerSecret: os.Getenv("INSEE_CONSUMER_SECRET"),
	}
	if c.consumerKey == "" || c.consumerSecret == "" {
		log.Printf("[registry][insee] credentials not configured, lookups run in offline mode")
	}
	return c
}

func (c *INSEEClient) LookupCompany(ctx context.Context, identifier string) (entities.CompanyInfo, error) {
	switch len(identifier) {
	case 9:
		if !ValidSIRENChecksum(identifier) {
			return entities.CompanyInfo{}, usecase.ErrInvalidIdentifier
		}
		return c.lookupSIREN(ctx, identifier)
	case 14:
		if !ValidSIRENChecksum(identifier[:9]) || !ValidSIRETChecksum(identifier) {
			return entities.CompanyInfo{}, usecase.ErrInvalidIdentifier
		}
		return c.lookupSIRET(ctx, identifier)
	default:
		return entities.CompanyInfo{}, usecase.ErrInvalidIdentifier
	}
}

func (c *INSEEClient) ValidateSIREN(ctx context.Context, siren string) (bool, error) {
	if !sirenPattern.MatchString(siren) || !ValidSIRENChecksum(siren) {
		return false, nil
	}
	return c.remoteExists(ctx, "/siren/"+siren)
}

func (c *INSEEClient) ValidateSIRET(ctx context.Context, siret string) (bool, error) {
	if !siretPattern.MatchString(siret) || !ValidSIRENChecksum(siret[:9]) || !ValidSIRETChecksum(siret) {
		return false, nil
	}
	return c.remoteExists(ctx, "/siret/"+siret)
}

// remoteExists confirms existence against the API; without credentials the
// checksum verdict stands.
func (c *INSEEClient) remoteExists(ctx context.Context, path string) (bool, error) {
	token, err := c.token(ctx)
	if err != nil || token == "" {
		return true, nil
	}
	status, _, err := c.get(ctx, token, path)
	if err != nil {
		log.Printf("[registry][insee] existence check failed path=%s err=%v", path, err)
		return true, nil
	}
	return status == http.StatusOK, nil
}

type sirenResponse struct {
	UniteLegale struct {
		Denomination string `json:"denominationUniteLegale"`
		Periodes     []struct {
			CategorieJuridique string `json:"categorieJuridiqueUniteLegale"`
			ActivitePrincipale string `json:"activitePrincipaleUniteLegale"`
			EtatAdministratif  string `json:"etatAdministratifUniteLegale"`
		} `json:"periodesUniteLegale"`
	} `json:"uniteLegale"`
}

type siretResponse struct {
	Etablissement struct {
		SIREN       string `json:"siren"`
		UniteLegale struct {
			Denomination string `json:"denominationUniteLegale"`
			Periodes     []struct {
				CategorieJuridique string `json:"categorieJuridiqueUniteLegale"`
			} `json:"periodesUniteLegale"`
		} `json:"uniteLegale"`
		Adresse struct {
			NumeroVoie     string `json:"numeroVoieEtablissement"`
			TypeVoie       string `json:"typeVoieEtablissement"`
			LibelleVoie    string `json:"libelleVoieEtablissement"`
			CodePostal     string `json:"codePostalEtablissement"`
			LibelleCommune string `json:"libelleCommuneEtablissement"`
		} `json:"adresseEtablissement"`
		Periodes []struct {
			ActivitePrincipale string `json:"activitePrincipaleEtablissement"`
			EtatAdministratif  string `json:"etatAdministratifEtablissement"`
		} `json:"periodesEtablissement"`
	} `json:"etablissement"`
}

func (c *INSEEClient) lookupSIREN(ctx context.Context, siren string) (entities.CompanyInfo, error) {
	token, err := c.token(ctx)
	if err != nil || token == "" {
		return c.offlineInfo(siren, ""), nil
	}

	status, body, err := c.get(ctx, token, "/siren/"+siren)
	if err != nil {
		return entities.CompanyInfo{}, fmt.Errorf("sirene lookup: %w", err)
	}
	if status == http.StatusNotFound {
		return entities.CompanyInfo{}, usecase.ErrCompanyNotFound
	}
	if status != http.StatusOK {
		return entities.CompanyInfo{}, fmt.Errorf("sirene lookup: unexpected status %d", status)
	}

	var parsed sirenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return entities.CompanyInfo{}, fmt.Errorf("sirene lookup: %w", err)
	}
	if len(parsed.UniteLegale.Periodes) == 0 {
		return entities.CompanyInfo{}, usecase.ErrCompanyNotFound
	}

	period := parsed.UniteLegale.Periodes[0]
	return entities.CompanyInfo{
		SIREN:        siren,
		CompanyName:  parsed.UniteLegale.Denomination,
		LegalForm:    period.CategorieJuridique,
		ActivityCode: period.ActivitePrincipale,
		VATNumber:    VATNumberFromSIREN(siren),
		IsActive:     period.EtatAdministratif != "C",
	}, nil
}

func (c *INSEEClient) lookupSIRET(ctx context.Context, siret string) (entities.CompanyInfo, error) {
	siren := siret[:9]
	token, err := c.token(ctx)
	if err != nil || token == "" {
		return c.offlineInfo(siren, siret), nil
	}

	status, body, err := c.get(ctx, token, "/siret/"+siret)
	if err != nil {
		return entities.CompanyInfo{}, fmt.Errorf("sirene lookup: %w", err)
	}
	if status == http.StatusNotFound {
		return entities.CompanyInfo{}, usecase.ErrCompanyNotFound
	}
	if status != http.StatusOK {
		return entities.CompanyInfo{}, fmt.Errorf("sirene lookup: unexpected status %d", status)
	}

	var parsed siretResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return entities.CompanyInfo{}, fmt.Errorf("sirene lookup: %w", err)
	}

	etab := parsed.Etablissement
	var legalForm string
	if len(etab.UniteLegale.Periodes) > 0 {
		legalForm = etab.UniteLegale.Periodes[0].CategorieJuridique
	}
	var activityCode string
	isActive := true
	if len(etab.Periodes) > 0 {
		activityCode = etab.Periodes[0].ActivitePrincipale
		isActive = etab.Periodes[0].EtatAdministratif != "C"
	}

	var street []string
	for _, part := range []string{etab.Adresse.NumeroVoie, etab.Adresse.TypeVoie, etab.Adresse.LibelleVoie} {
		if part != "" {
			street = append(street, part)
		}
	}

	return entities.CompanyInfo{
		SIREN:        siren,
		SIRET:        siret,
		CompanyName:  etab.UniteLegale.Denomination,
		LegalForm:    legalForm,
		Address:      strings.Join(street, " "),
		PostalCode:   etab.Adresse.CodePostal,
		City:         etab.Adresse.LibelleCommune,
		ActivityCode: activityCode,
		VATNumber:    VATNumberFromSIREN(siren),
		IsActive:     isActive,
	}, nil
}

// offlineInfo is the degraded answer when the API is not reachable: identity
// and the derivable VAT number only.
func (c *INSEEClient) offlineInfo(siren, siret string) entities.CompanyInfo {
	return entities.CompanyInfo{
		SIREN:     siren,
		SIRET:     siret,
		VATNumber: VATNumberFromSIREN(siren),
		IsActive:  true,
	}
}

func (c *INSEEClient) get(ctx context.Context, token, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var body []byte
	if resp.StatusCode == http.StatusOK {
		var parsed json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return resp.StatusCode, nil, err
		}
		body = parsed
	}
	return resp.StatusCode, body, nil
}

// token returns a cached OAuth2 client-credentials token, refreshing it one
// minute before expiry.
func (c *INSEEClient) token(ctx context.Context) (string, error) {
	if c.consumerKey == "" || c.consumerSecret == "" {
		return "", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insee auth: unexpected status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	if tokenResp.ExpiresIn == 0 {
		tokenResp.ExpiresIn = 3600
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)
	return c.accessToken, nil
}

// ValidSIRENChecksum checks the 9-digit SIREN with the Luhn algorithm.
func ValidSIRENChecksum(siren string) bool {
	if !sirenPattern.MatchString(siren) {
		return false
	}
	total := 0
	for i, r := range siren {
		n := int(r - '0')
		if i%2 == 1 {
			n *= 2
			if n > 9 {
				n = n/10 + n%10
			}
		}
		total += n
	}
	return total%10 == 0
}

// ValidSIRETChecksum checks the 14-digit SIRET with its weighted sum.
func ValidSIRETChecksum(siret string) bool {
	if !siretPattern.MatchString(siret) {
		return false
	}
	weights := []int{3, 7, 1, 3, 7, 1, 3, 7, 1, 3, 7, 1, 3, 7}
	total := 0
	for i, r := range siret {
		total += int(r-'0') * weights[i]
	}
	return total%10 == 0
}

// VATNumberFromSIREN derives the intra-community VAT number.
func VATNumberFromSIREN(siren string) string {
	n, err := strconv.Atoi(siren)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("FR%02d%s", n%97, siren)
}

// Package pubchem implements the fetched property source against the
// PubChem PUG REST and PUG View APIs.
package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/domain/property"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

const (
	defaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov"

	// PubChem asks for no more than 5 requests per second.
	requestsPerSecond = 5
	requestBurst      = 5

	maxSynonyms = 10
)

// casPattern matches CAS registry numbers among compound synonyms.
var casPattern = regexp.MustCompile(`^\d{2,7}-\d{2}-\d$`)

// Client looks up compound data on PubChem.  It resolves the CID once per
// structure and caches it, then serves individual property keys from the
// record and experimental-property endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logging.Logger

	mu    sync.Mutex
	cache map[string]*compoundRecord // keyed by structure key
}

// compoundRecord holds everything resolved from one CID lookup.
type compoundRecord struct {
	cid       int64
	iupacName string
	synonyms  []string
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the PubChem endpoint, used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit overrides the client-side request rate.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewClient builds a PubChem-backed fetched source.
func NewClient(logger logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		logger:     logger,
		cache:      make(map[string]*compoundRecord),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ property.FetchedSource = (*Client)(nil)

func (c *Client) Name() string { return "pubchem" }

// Lookup serves one property key for the identified compound.  Keys with no
// PubChem mapping fail fast with a no-match error; the adapter degrades
// them per key.
func (c *Client) Lookup(ctx context.Context, id *identity.MoleculeIdentity, key sdstypes.PropertyKey) (sdstypes.TaggedValue, error) {
	rec, err := c.resolve(ctx, id)
	if err != nil {
		return sdstypes.TaggedValue{}, err
	}

	switch key {
	case sdstypes.KeyPubChemCID:
		return fetched(fmt.Sprintf("%d", rec.cid), ""), nil
	case sdstypes.KeyIUPACName:
		if rec.iupacName == "" {
			return sdstypes.TaggedValue{}, noMatch(key)
		}
		return fetched(rec.iupacName, ""), nil
	case sdstypes.KeyCommonName:
		if len(rec.synonyms) == 0 {
			return sdstypes.TaggedValue{}, noMatch(key)
		}
		return fetched(rec.synonyms[0], ""), nil
	case sdstypes.KeySynonyms:
		if len(rec.synonyms) == 0 {
			return sdstypes.TaggedValue{}, noMatch(key)
		}
		syns := rec.synonyms
		if len(syns) > maxSynonyms {
			syns = syns[:maxSynonyms]
		}
		return fetched(strings.Join(syns, ", "), ""), nil
	case sdstypes.KeyCASNumber:
		for _, syn := range rec.synonyms {
			if casPattern.MatchString(syn) {
				return fetched(syn, ""), nil
			}
		}
		return sdstypes.TaggedValue{}, noMatch(key)
	case sdstypes.KeyMeltingPoint:
		return c.experimental(ctx, rec.cid, key, "Melting Point")
	case sdstypes.KeyBoilingPoint:
		return c.experimental(ctx, rec.cid, key, "Boiling Point")
	case sdstypes.KeyDensity:
		return c.experimental(ctx, rec.cid, key, "Density")
	case sdstypes.KeyVaporPressure:
		return c.experimental(ctx, rec.cid, key, "Vapor Pressure")
	case sdstypes.KeyAppearance:
		return c.experimental(ctx, rec.cid, key, "Physical Description")
	case sdstypes.KeyOdor:
		return c.experimental(ctx, rec.cid, key, "Odor")
	default:
		return sdstypes.TaggedValue{}, noMatch(key)
	}
}

// resolve maps the canonical structure to a compound record, hitting the
// network only on the first request per structure key.
func (c *Client) resolve(ctx context.Context, id *identity.MoleculeIdentity) (*compoundRecord, error) {
	c.mu.Lock()
	if rec, ok := c.cache[id.StructureKey]; ok {
		c.mu.Unlock()
		return rec, nil
	}
	c.mu.Unlock()

	cid, iupac, err := c.lookupCID(ctx, id.CanonicalSMILES)
	if err != nil {
		return nil, err
	}
	synonyms, err := c.lookupSynonyms(ctx, cid)
	if err != nil {
		// Synonyms are optional; the compound itself resolved.
		c.logger.Warn("PubChem synonym lookup failed",
			logging.Int64("cid", cid), logging.Err(err))
		synonyms = nil
	}

	rec := &compoundRecord{cid: cid, iupacName: iupac, synonyms: synonyms}
	c.mu.Lock()
	c.cache[id.StructureKey] = rec
	c.mu.Unlock()

	c.logger.Debug("PubChem compound resolved",
		logging.String("structure_key", id.StructureKey),
		logging.Int64("cid", cid),
		logging.Int("synonyms", len(synonyms)))
	return rec, nil
}

func (c *Client) lookupCID(ctx context.Context, smiles string) (int64, string, error) {
	u := fmt.Sprintf("%s/rest/pug/compound/smiles/%s/property/IUPACName/JSON",
		c.baseURL, url.PathEscape(smiles))

	var body struct {
		PropertyTable struct {
			Properties []struct {
				CID       int64  `json:"CID"`
				IUPACName string `json:"IUPACName"`
			} `json:"Properties"`
		} `json:"PropertyTable"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return 0, "", err
	}
	props := body.PropertyTable.Properties
	if len(props) == 0 || props[0].CID == 0 {
		return 0, "", errors.New(errors.ErrCodeDataSourceNoMatch,
			"Compound not found on PubChem")
	}
	return props[0].CID, props[0].IUPACName, nil
}

func (c *Client) lookupSynonyms(ctx context.Context, cid int64) ([]string, error) {
	u := fmt.Sprintf("%s/rest/pug/compound/cid/%d/synonyms/JSON", c.baseURL, cid)

	var body struct {
		InformationList struct {
			Information []struct {
				Synonym []string `json:"Synonym"`
			} `json:"Information"`
		} `json:"InformationList"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	info := body.InformationList.Information
	if len(info) == 0 {
		return nil, nil
	}
	return info[0].Synonym, nil
}

// experimental pulls the first reported string value under a PUG View
// heading, e.g. "Melting Point".
func (c *Client) experimental(ctx context.Context, cid int64, key sdstypes.PropertyKey, heading string) (sdstypes.TaggedValue, error) {
	u := fmt.Sprintf("%s/rest/pug_view/data/compound/%d/JSON?heading=%s",
		c.baseURL, cid, url.QueryEscape(heading))

	var body pugViewRecord
	if err := c.getJSON(ctx, u, &body); err != nil {
		return sdstypes.TaggedValue{}, err
	}
	if v := body.firstString(); v != "" {
		return fetched(v, ""), nil
	}
	return sdstypes.TaggedValue{}, noMatch(key)
}

// getJSON runs one rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDataSourceUnavailable,
			"PubChem request cancelled")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "Failed to build PubChem request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDataSourceUnavailable,
			"PubChem request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodeDataSourceNoMatch, "Compound not found on PubChem")
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		return errors.New(errors.ErrCodeDataSourceRateLimited, "PubChem rate limit exceeded")
	case resp.StatusCode != http.StatusOK:
		return errors.New(errors.ErrCodeDataSourceUnavailable,
			"PubChem returned an unexpected status").
			WithDetail(fmt.Sprintf("status=%d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDataSourceUnavailable,
			"Failed to read PubChem response")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, errors.ErrCodeDataSourceParseError,
			"Failed to parse PubChem response")
	}
	return nil
}

// pugViewRecord is the subset of the PUG View tree needed to pull the first
// experimental string value under the requested heading.
type pugViewRecord struct {
	Record struct {
		Section []pugViewSection `json:"Section"`
	} `json:"Record"`
}

type pugViewSection struct {
	Section     []pugViewSection `json:"Section,omitempty"`
	Information []struct {
		Value struct {
			StringWithMarkup []struct {
				String string `json:"String"`
			} `json:"StringWithMarkup"`
		} `json:"Value"`
	} `json:"Information,omitempty"`
}

func (r *pugViewRecord) firstString() string {
	var walk func(sections []pugViewSection) string
	walk = func(sections []pugViewSection) string {
		for _, s := range sections {
			for _, info := range s.Information {
				for _, sm := range info.Value.StringWithMarkup {
					if sm.String != "" {
						return sm.String
					}
				}
			}
			if v := walk(s.Section); v != "" {
				return v
			}
		}
		return ""
	}
	return walk(r.Record.Section)
}

func fetched(value, unit string) sdstypes.TaggedValue {
	return sdstypes.TaggedValue{
		Value:      value,
		Unit:       unit,
		Source:     sdstypes.SourceFetched,
		Confidence: 0.8,
	}
}

func noMatch(key sdstypes.PropertyKey) error {
	return errors.New(errors.ErrCodeDataSourceNoMatch,
		"No PubChem data for property").WithDetail("key=" + string(key))
}

//Personal.AI order the ending

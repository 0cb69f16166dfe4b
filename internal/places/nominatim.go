package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/neexbeast/tourist-routes/internal/geo"
)

const (
	httpTimeout = 10 * time.Second

	// userAgent identifies the application per the Nominatim usage policy.
	userAgent = "TouristRoutes/1.0 (contact@example.com)"

	nominatimDefaultURL = "https://nominatim.openstreetmap.org/search"

	// requestLimit bounds how many raw results Nominatim returns.
	requestLimit = 20

	// maxResults caps the tourist-relevant results kept after filtering.
	maxResults = 10

	// importanceThreshold admits highly ranked places regardless of type.
	importanceThreshold = 0.3
)

// Place is a point of interest in the shape shared by catalog spots and
// external search results.
type Place struct {
	ID          string       `json:"id"`
	Nome        string       `json:"nome"`
	Descricao   string       `json:"descricao,omitempty"`
	Localizacao geo.Location `json:"localizacao"`
	ImagemURL   string       `json:"imagem_url,omitempty"`
	Endereco    string       `json:"endereco,omitempty"`
	Categoria   string       `json:"categoria,omitempty"`
	Source      string       `json:"source,omitempty"`
	Importance  float64      `json:"importance,omitempty"`
}

// Client queries the Nominatim geocoding service.
type Client struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// NewClient constructs a Client against the production Nominatim URL.
func NewClient(log *slog.Logger) *Client {
	return NewClientWithURL(nominatimDefaultURL, log)
}

// NewClientWithURL constructs a Client against a custom base URL (for tests).
func NewClientWithURL(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: httpTimeout},
		log:     log,
	}
}

type nominatimResult struct {
	PlaceID     json.Number       `json:"place_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Type        string            `json:"type"`
	Category    string            `json:"category"`
	Class       string            `json:"class"`
	DisplayName string            `json:"display_name"`
	ExtraTags   map[string]string `json:"extratags"`
	Importance  float64           `json:"importance"`
}

// acceptedTypes match against the result's type and class fields.
var acceptedTypes = []string{
	"tourism", "attraction", "monument", "museum", "park", "lake", "water",
	"natural", "leisure", "historic", "memorial", "viewpoint", "beach",
}

// acceptedCategories match against the result's category field.
var acceptedCategories = []string{
	"tourism", "amenity", "leisure", "natural", "historic", "place",
}

// TouristRelevant classifies an external search result as
// tourist-relevant: a keyword match on its type, category, or class, a
// tourism-related extra tag, or an importance score above the fixed
// threshold. Pure function, independent of the network call.
func TouristRelevant(placeType, category, class string, extraTags map[string]string, importance float64) bool {
	placeType = strings.ToLower(placeType)
	category = strings.ToLower(category)
	class = strings.ToLower(class)

	return containsAny(placeType, acceptedTypes) ||
		containsAny(category, acceptedCategories) ||
		containsAny(class, acceptedTypes) ||
		hasTourismTag(extraTags) ||
		importance > importanceThreshold
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func hasTourismTag(tags map[string]string) bool {
	for k, v := range tags {
		if strings.Contains(strings.ToLower(k), "tourism") || strings.Contains(strings.ToLower(v), "tourism") {
			return true
		}
	}
	return false
}

// Search queries Nominatim and returns the tourist-relevant places,
// sorted by descending importance and truncated to maxResults.
// Transport and decode failures are logged and degrade to an empty
// result; the caller's search never fails because of this service.
func (c *Client) Search(ctx context.Context, query string) []Place {
	results, err := c.search(ctx, query)
	if err != nil {
		c.log.Warn("nominatim search failed, degrading to empty result", "query", query, "err", err)
		return nil
	}
	c.log.Info("nominatim search done", "query", query, "results", len(results))
	return results
}

func (c *Client) search(ctx context.Context, query string) ([]Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(requestLimit))
	params.Set("addressdetails", "1")
	params.Set("extratags", "1")
	params.Set("namedetails", "1")
	params.Set("accept-language", "pt-BR,pt,en")

	endpoint := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var raw []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding nominatim response: %w", err)
	}

	places := make([]Place, 0, len(raw))
	for _, item := range raw {
		if !TouristRelevant(item.Type, item.Category, item.Class, item.ExtraTags, item.Importance) {
			continue
		}
		places = append(places, mapResult(item))
	}

	sort.SliceStable(places, func(i, j int) bool { return places[i].Importance > places[j].Importance })
	if len(places) > maxResults {
		places = places[:maxResults]
	}
	return places, nil
}

// mapResult converts a raw Nominatim entry into the common place shape,
// with an ext_-prefixed id so external results never collide with
// catalog ids.
func mapResult(item nominatimResult) Place {
	name := item.DisplayName
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)

	descricao := "📍 " + item.DisplayName
	if item.Type != "" {
		descricao = titleCase(item.Type) + " - " + descricao
	}

	categoria := titleCase(item.Type)
	if categoria == "" {
		categoria = titleCase(item.Category)
	}
	if categoria == "" {
		categoria = "Ponto de Interesse"
	}

	lat, _ := strconv.ParseFloat(item.Lat, 64)
	lng, _ := strconv.ParseFloat(item.Lon, 64)

	return Place{
		ID:          "ext_" + item.PlaceID.String(),
		Nome:        name,
		Descricao:   descricao,
		Localizacao: geo.Location{Latitude: lat, Longitude: lng},
		Endereco:    item.DisplayName,
		Categoria:   categoria,
		Source:      "nominatim",
		Importance:  item.Importance,
	}
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = string(unicode.ToUpper(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

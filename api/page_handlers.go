package api

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
	internalErrors "github.com/gcbaptista/go-portfolio/internal/errors"
	"github.com/gcbaptista/go-portfolio/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	emptyBlogMessage     = "No articles found matching your search criteria."
	emptyProjectsMessage = "No projects found matching your filters."

	latestPostsOnHome = 3
	previewTagCount   = 3
)

var templateFuncs = template.FuncMap{
	"paragraphs": paragraphs,
	"dict":       dict,
}

func (api *API) loadTemplates(router *gin.Engine) error {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)
	return nil
}

// FacetOption is one selectable facet value on a listing page.
type FacetOption struct {
	Value    string
	Selected bool
	// URL is the listing with this value toggled.
	URL string
}

type postCard struct {
	Post     model.BlogPost
	Date     string
	Tags     []string
	MoreTags int
}

func newPostCards(posts []model.BlogPost) []postCard {
	cards := make([]postCard, len(posts))
	for i, post := range posts {
		tags, more := post.PreviewTags(previewTagCount)
		cards[i] = postCard{Post: post, Date: post.DisplayDate(), Tags: tags, MoreTags: more}
	}
	return cards
}

// facetOptions lists the values of facet with their toggle links.
func facetOptions(basePath string, criteria catalog.Criteria, facet catalog.Facet, values []string) []FacetOption {
	options := make([]FacetOption, 0, len(values))
	for _, value := range values {
		toggled, err := criteria.Toggled(facet, value)
		if err != nil {
			continue
		}
		options = append(options, FacetOption{
			Value:    value,
			Selected: criteria.IsSelected(facet, value),
			URL:      listingURL(basePath, toggled),
		})
	}
	return options
}

func listingURL(basePath string, criteria catalog.Criteria) string {
	if encoded := criteria.Encode(); encoded != "" {
		return basePath + "?" + encoded
	}
	return basePath
}

// HomePageHandler renders the profile with featured projects and the latest posts.
func (api *API) HomePageHandler(c *gin.Context) {
	posts := api.content.Posts.Records()
	if len(posts) > latestPostsOnHome {
		posts = posts[:latestPostsOnHome]
	}

	var featured []model.Project
	for _, project := range api.content.Projects.Records() {
		if project.Featured {
			featured = append(featured, project)
		}
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":    api.content.Profile.Name,
		"Profile":  api.content.Profile,
		"Featured": featured,
		"Posts":    newPostCards(posts),
	})
}

// BlogPageHandler renders the blog listing with its search box and tag badges.
func (api *API) BlogPageHandler(c *gin.Context) {
	criteria, ok := api.parsePageCriteria(c)
	if !ok {
		return
	}

	posts := listPage(api, c, api.content.Posts, criteria)
	suggestion := pageSuggestion(api, api.content.Posts, "/blog", criteria, len(posts))

	c.HTML(http.StatusOK, "blog.html", gin.H{
		"Title":        "Blog",
		"Query":        criteria.Query,
		"Tags":         facetOptions("/blog", criteria, catalog.FacetTag, api.content.Posts.FacetValues(catalog.FacetTag)),
		"Posts":        newPostCards(posts),
		"Total":        len(posts),
		"HasCriteria":  !criteria.IsEmpty(),
		"EmptyMessage": emptyBlogMessage,
		"Suggestion":   suggestion,
	})
}

// ProjectsPageHandler renders the project listing with its facet checkboxes.
func (api *API) ProjectsPageHandler(c *gin.Context) {
	criteria, ok := api.parsePageCriteria(c)
	if !ok {
		return
	}

	projects := listPage(api, c, api.content.Projects, criteria)
	suggestion := pageSuggestion(api, api.content.Projects, "/projects", criteria, len(projects))

	cat := api.content.Projects
	c.HTML(http.StatusOK, "projects.html", gin.H{
		"Title":        "Projects",
		"Query":        criteria.Query,
		"Categories":   facetOptions("/projects", criteria, catalog.FacetCategory, cat.FacetValues(catalog.FacetCategory)),
		"Technologies": facetOptions("/projects", criteria, catalog.FacetTag, cat.FacetValues(catalog.FacetTag)),
		"Years":        facetOptions("/projects", criteria, catalog.FacetYear, cat.FacetValues(catalog.FacetYear)),
		"Projects":     projects,
		"Total":        len(projects),
		"HasCriteria":  !criteria.IsEmpty(),
		"EmptyMessage": emptyProjectsMessage,
		"Suggestion":   suggestion,
	})
}

// PostPageHandler renders a single post.
func (api *API) PostPageHandler(c *gin.Context) {
	slug := c.Param("slug")

	post, err := api.content.Posts.Get(slug)
	if err != nil {
		if errors.Is(err, internalErrors.ErrRecordNotFound) {
			api.renderError(c, http.StatusNotFound, "Post not found")
			return
		}
		api.renderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.HTML(http.StatusOK, "post.html", gin.H{
		"Title": post.Title,
		"Post":  post,
		"Date":  post.DisplayDate(),
	})
}

// parsePageCriteria is parseListingCriteria for HTML pages.
func (api *API) parsePageCriteria(c *gin.Context) (catalog.Criteria, bool) {
	criteria, err := catalog.ParseCriteria(c.Request.URL.Query())
	if err != nil {
		api.renderError(c, http.StatusBadRequest, err.Error())
		return catalog.Criteria{}, false
	}
	if result := ValidateCriteria(criteria, api.settings.Filter.MaxQueryLength, api.settings.Filter.MaxSelections); result.HasErrors() {
		api.renderError(c, http.StatusBadRequest, result.Errors[0].Message)
		return catalog.Criteria{}, false
	}
	return criteria, true
}

// listPage filters cat for a page view and records the request like the JSON listing does.
func listPage[R catalog.Record](api *API, c *gin.Context, cat *catalog.Catalog[R], criteria catalog.Criteria) []R {
	start := time.Now()
	items := cat.Filter(criteria)
	api.recordFilter(c, cat.Name(), criteria, len(items), time.Since(start))
	return items
}

// suggestionLink is a "did you mean" offer on an empty listing page.
type suggestionLink struct {
	Query string
	URL   string
}

func pageSuggestion[R catalog.Record](api *API, cat *catalog.Catalog[R], basePath string, criteria catalog.Criteria, results int) *suggestionLink {
	if results > 0 {
		return nil
	}
	suggestion, alternative := suggestFor(api, cat, criteria)
	if suggestion == nil {
		return nil
	}
	return &suggestionLink{Query: suggestion.Query, URL: listingURL(basePath, alternative)}
}

func (api *API) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

func isAPIRequest(c *gin.Context) bool {
	path := c.Request.URL.Path
	return strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/admin/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}

// paragraphs splits text on blank lines.
func paragraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, strings.Join(strings.Fields(block), " "))
		}
	}
	return out
}

// dict builds a map from alternating keys and values for passing several
// arguments to a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict expects an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

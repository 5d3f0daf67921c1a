package index

// RecipeIndex is the catalog contract consumed by the service and API
// layers. *DB is the only implementation; the interface exists so
// handlers can be tested against a fake.
type RecipeIndex interface {
	UpsertRecipe(r RecipeRow, body string) error
	DeleteRecipe(path string) error
	GetRecipe(path string) (*RecipeRow, error)
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	ListRecipes(limit, offset int, tag string) ([]RecipeRow, int, error)
	Resolve(target string) (*RecipeRow, error)
	Search(query string, limit int) ([]SearchHit, error)
	Close() error
}

var _ RecipeIndex = (*DB)(nil)

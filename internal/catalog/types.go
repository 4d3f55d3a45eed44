package catalog

// Difficulty is the skill level of a snippet or tutorial.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Rank orders difficulties from easiest to hardest. Unknown values rank 0.
func (d Difficulty) Rank() int {
	switch d {
	case Beginner:
		return 1
	case Intermediate:
		return 2
	case Advanced:
		return 3
	default:
		return 0
	}
}

// Snippet is a short, copyable code example.
type Snippet struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Language    string     `yaml:"language" json:"language"`
	Code        string     `yaml:"code" json:"code"`
	Tags        []string   `yaml:"tags" json:"tags"`
	Category    string     `yaml:"category" json:"category"`
	Author      string     `yaml:"author" json:"author"`
	CreatedAt   string     `yaml:"created_at" json:"created_at"`
	Likes       int        `yaml:"likes" json:"likes"`
	Difficulty  Difficulty `yaml:"difficulty" json:"difficulty"`
}

// Tutorial is a multi-step guide.
type Tutorial struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Content     string     `yaml:"content" json:"content"`
	Steps       []string   `yaml:"steps" json:"steps"`
	Category    string     `yaml:"category" json:"category"`
	Difficulty  Difficulty `yaml:"difficulty" json:"difficulty"`
	Duration    string     `yaml:"duration" json:"duration"`
	Tags        []string   `yaml:"tags" json:"tags"`
	Author      string     `yaml:"author" json:"author"`
	CreatedAt   string     `yaml:"created_at" json:"created_at"`
	Likes       int        `yaml:"likes" json:"likes"`
	Completions int        `yaml:"completions" json:"completions"`
}

// FAQ is a frequently asked question. Helpful is the base helpful count
// before any local votes are applied.
type FAQ struct {
	ID       string   `yaml:"id" json:"id"`
	Question string   `yaml:"question" json:"question"`
	Answer   string   `yaml:"answer" json:"answer"`
	Category string   `yaml:"category" json:"category"`
	Tags     []string `yaml:"tags" json:"tags"`
	Helpful  int      `yaml:"helpful" json:"helpful"`
	Views    int      `yaml:"views" json:"views"`
}

// Term is a glossary entry.
type Term struct {
	ID           string   `yaml:"id" json:"id"`
	Term         string   `yaml:"term" json:"term"`
	Definition   string   `yaml:"definition" json:"definition"`
	Category     string   `yaml:"category" json:"category"`
	RelatedTerms []string `yaml:"related_terms" json:"related_terms"`
	Examples     []string `yaml:"examples" json:"examples"`
}

// Persona is a preset assistant character.
type Persona struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Description   string   `yaml:"description" json:"description"`
	Avatar        string   `yaml:"avatar" json:"avatar"`
	Specialties   []string `yaml:"specialties" json:"specialties"`
	Personality   string   `yaml:"personality" json:"personality"`
	ResponseStyle string   `yaml:"response_style" json:"response_style"`
}

package skills

import "strings"

// Category names.
const (
	CategoryLanguages = "Programming Languages"
	CategoryFrontend  = "Frontend Development"
	CategoryBackend   = "Backend Development"
	CategoryDatabases = "Databases"
	CategoryAI        = "AI & Machine Learning"
	CategoryCloud     = "Cloud & DevOps"
	CategoryTools     = "Tools & Technologies"
	CategoryMobile    = "Mobile Development"

	// DefaultCategory receives every technology nothing else claims.
	DefaultCategory = CategoryTools
)

// PreferredOrder is the display order of known categories. Categories not
// listed here sort after these, alphabetically.
var PreferredOrder = []string{
	CategoryLanguages,
	CategoryFrontend,
	CategoryBackend,
	CategoryDatabases,
	CategoryAI,
	CategoryCloud,
	CategoryTools,
	CategoryMobile,
}

type categoryMembers struct {
	name    string
	members []string
}

// categoryTable is searched in declaration order; the first category with a
// case-insensitive match wins.
var categoryTable = []categoryMembers{
	{CategoryLanguages, []string{
		"JavaScript", "TypeScript", "Python", "Java", "PHP", "C++", "C#", "Go", "Rust",
	}},
	{CategoryFrontend, []string{
		"React", "Next.js", "Vue.js", "Angular", "Svelte", "HTML5", "CSS3",
		"Tailwind CSS", "Bootstrap", "Material-UI", "Chakra UI", "SASS", "SCSS",
		"Framer Motion", "React Router", "Redux", "Vite", "Webpack",
	}},
	{CategoryBackend, []string{
		"Node.js", "Express.js", "Django", "Flask", "FastAPI", "Spring Boot", "Laravel",
		"Ruby on Rails", "ASP.NET", "Koa.js", "Nest.js", "GraphQL", "Apollo Server",
	}},
	{CategoryDatabases, []string{
		"MongoDB", "PostgreSQL", "MySQL", "SQLite", "Redis", "DynamoDB", "Cassandra",
		"Neo4j", "InfluxDB", "Firebase", "Supabase",
	}},
	{CategoryCloud, []string{
		"AWS", "Google Cloud", "Azure", "Docker", "Kubernetes", "Jenkins", "GitHub Actions",
		"GitLab CI", "Terraform", "Ansible", "Nginx", "Apache", "Vercel", "Netlify", "Heroku",
	}},
	{CategoryAI, []string{
		"TensorFlow", "PyTorch", "Scikit-learn", "Keras", "OpenCV", "Pandas", "NumPy",
		"Machine Learning", "Deep Learning", "Natural Language Processing", "Computer Vision",
		"OpenAI API", "LangChain", "Hugging Face", "AI Agents",
	}},
	{CategoryMobile, []string{
		"React Native", "Flutter", "Ionic", "Xamarin", "Swift", "Kotlin", "Cordova",
	}},
	{CategoryTools, []string{
		"Git", "GitHub", "GitLab", "Bitbucket", "VS Code", "IntelliJ", "Eclipse",
		"Postman", "Insomnia", "Figma", "Adobe XD", "REST API", "Socket.io",
		"JWT", "bcrypt", "CORS", "Stripe", "PayPal", "Twilio",
	}},
}

// aliases maps alternate spellings either to a canonical technology name or
// straight to a category name. Keys match exactly.
var aliases = map[string]string{
	"HTML":              "HTML5",
	"CSS":               "CSS3",
	"Log Analysis":      CategoryAI,
	"Server-side Logic": CategoryBackend,
	"Database Design":   CategoryDatabases,
	"Authentication":    CategoryTools,
	"IoT":               CategoryTools,
	"Hibernate":         CategoryTools,
	"Spring Security":   CategoryTools,
	"Axios":             CategoryTools,
}

type keywordRule struct {
	keywords []string
	category string
}

// keywordRules apply to names missing from the tables, first match wins.
var keywordRules = []keywordRule{
	{[]string{"react", "vue", "angular"}, CategoryFrontend},
	{[]string{"node", "express", "api"}, CategoryBackend},
	{[]string{"database", "db", "sql"}, CategoryDatabases},
	{[]string{"ai", "ml", "learning"}, CategoryAI},
	{[]string{"cloud", "aws", "docker"}, CategoryCloud},
}

var (
	// memberIndex maps a lowercased technology to its category.
	memberIndex = buildMemberIndex()
	// categoryNames holds every category known to the tables.
	categoryNames = buildCategoryNames()
)

func buildMemberIndex() map[string]string {
	idx := make(map[string]string)
	for _, c := range categoryTable {
		for _, m := range c.members {
			key := strings.ToLower(m)
			if _, taken := idx[key]; !taken {
				idx[key] = c.name
			}
		}
	}
	return idx
}

func buildCategoryNames() map[string]struct{} {
	names := make(map[string]struct{}, len(categoryTable))
	for _, c := range categoryTable {
		names[c.name] = struct{}{}
	}
	return names
}

// Categorize returns the skill category for a technology name. It never
// fails: unknown names land in DefaultCategory.
func Categorize(tech string) string {
	tech = strings.TrimSpace(tech)

	if mapped, ok := aliases[tech]; ok {
		if _, isCategory := categoryNames[mapped]; isCategory {
			return mapped
		}
		tech = mapped
	}

	lower := strings.ToLower(tech)
	if category, ok := memberIndex[lower]; ok {
		return category
	}

	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}

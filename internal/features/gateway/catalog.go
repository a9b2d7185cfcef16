package gateway

import (
	"strings"
)

// Library is one entry of the curated catalog served by the proxy
// endpoints. The catalog is static mock data; there is no indexing or
// retrieval engine behind it.
type Library struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	SnippetCount  int    `json:"snippetCount"`
	Documentation string `json:"-"`
}

type Catalog struct {
	libraries []Library
}

func NewCatalog() *Catalog {
	return &Catalog{libraries: catalogData}
}

func (c *Catalog) Search(query string) []Library {
	query = strings.ToLower(strings.TrimSpace(query))

	var results []Library
	for _, library := range c.libraries {
		if strings.Contains(strings.ToLower(library.ID), query) ||
			strings.Contains(strings.ToLower(library.Name), query) ||
			strings.Contains(strings.ToLower(library.Description), query) {
			results = append(results, library)
		}
	}

	return results
}

func (c *Catalog) GetDocumentation(libraryID string) (*Library, bool) {
	for _, library := range c.libraries {
		if library.ID == libraryID {
			return &library, true
		}
	}

	return nil, false
}

var catalogData = []Library{
	{
		ID:           "react",
		Name:         "React",
		Description:  "A JavaScript library for building user interfaces with components",
		SnippetCount: 2431,
		Documentation: "# React\n\nUse `useState` for local component state:\n\n" +
			"```jsx\nconst [count, setCount] = useState(0);\n```\n\n" +
			"Effects run after render; clean up subscriptions in the returned function.",
	},
	{
		ID:           "nextjs",
		Name:         "Next.js",
		Description:  "The React framework for production with server-side rendering",
		SnippetCount: 1892,
		Documentation: "# Next.js\n\nFile-system routing lives under `app/`. " +
			"Use `fetch` with revalidation options for cached server data:\n\n" +
			"```ts\nconst res = await fetch(url, { next: { revalidate: 3600 } });\n```",
	},
	{
		ID:           "vue",
		Name:         "Vue.js",
		Description:  "The progressive JavaScript framework for building web interfaces",
		SnippetCount: 1204,
		Documentation: "# Vue.js\n\nDeclare reactive state with `ref` inside `setup`:\n\n" +
			"```js\nconst count = ref(0);\ncount.value++;\n```",
	},
	{
		ID:           "svelte",
		Name:         "Svelte",
		Description:  "Cybernetically enhanced web apps with compile-time reactivity",
		SnippetCount: 764,
		Documentation: "# Svelte\n\nAssignments are reactive:\n\n" +
			"```svelte\n<script>\n  let count = 0;\n</script>\n<button on:click={() => count += 1}>{count}</button>\n```",
	},
	{
		ID:           "express",
		Name:         "Express",
		Description:  "Fast, unopinionated, minimalist web framework for Node.js",
		SnippetCount: 986,
		Documentation: "# Express\n\nMiddleware functions receive `(req, res, next)`:\n\n" +
			"```js\napp.use((req, res, next) => { console.log(req.path); next(); });\n```",
	},
	{
		ID:           "tailwindcss",
		Name:         "Tailwind CSS",
		Description:  "A utility-first CSS framework for rapid UI development",
		SnippetCount: 1547,
		Documentation: "# Tailwind CSS\n\nCompose utilities directly in markup:\n\n" +
			"```html\n<div class=\"flex items-center gap-2 rounded-lg p-4 shadow\">...</div>\n```",
	},
	{
		ID:           "prisma",
		Name:         "Prisma",
		Description:  "Next-generation ORM for Node.js and TypeScript",
		SnippetCount: 823,
		Documentation: "# Prisma\n\nQuery through the generated client:\n\n" +
			"```ts\nconst users = await prisma.user.findMany({ where: { active: true } });\n```",
	},
	{
		ID:           "fastapi",
		Name:         "FastAPI",
		Description:  "Modern, fast web framework for building APIs with Python",
		SnippetCount: 691,
		Documentation: "# FastAPI\n\nDeclare endpoints with type-annotated parameters:\n\n" +
			"```python\n@app.get(\"/items/{item_id}\")\nasync def read_item(item_id: int):\n    return {\"item_id\": item_id}\n```",
	},
}

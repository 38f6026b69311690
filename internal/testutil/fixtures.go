// Package testutil provides fixtures and helpers shared by the package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
	"github.com/gcbaptista/go-portfolio/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SamplePosts returns the six blog posts used throughout the tests.
func SamplePosts() []model.BlogPost {
	return []model.BlogPost{
		{
			Slug:        "how-to-build-responsive-website-tailwind",
			Title:       "How to Build a Responsive Website with Tailwind CSS",
			Excerpt:     "Learn how to create a fully responsive website using Tailwind CSS, a utility-first CSS framework that makes styling your projects a breeze.",
			Author:      "Sami Ullah Saleem",
			PublishedAt: date(2024, time.March, 15),
			ReadTime:    "5 min read",
			Tags:        []string{"Web Development", "CSS", "Tailwind", "Responsive Design"},
		},
		{
			Slug:        "getting-started-nextjs-14",
			Title:       "Getting Started with Next.js 14",
			Excerpt:     "Explore the latest features in Next.js 14 and learn how to leverage them to build faster, more efficient web applications.",
			Author:      "Sami Ullah Saleem",
			PublishedAt: date(2024, time.February, 28),
			ReadTime:    "8 min read",
			Tags:        []string{"Next.js", "React", "Web Development", "JavaScript"},
		},
		{
			Slug:        "power-of-typescript-modern-web-development",
			Title:       "The Power of TypeScript in Modern Web Development",
			Excerpt:     "Discover how TypeScript can improve your development workflow, catch errors early, and make your code more maintainable.",
			Author:      "Sami Ullah Saleem",
			PublishedAt: date(2024, time.January, 20),
			ReadTime:    "6 min read",
			Tags:        []string{"TypeScript", "JavaScript", "Web Development"},
		},
		{
			Slug:        "creating-animations-framer-motion",
			Title:       "Creating Animations with Framer Motion",
			Excerpt:     "Learn how to add beautiful animations to your React applications using Framer Motion, a production-ready motion library.",
			Author:      "Sami Ullah Saleem",
			PublishedAt: date(2023, time.December, 10),
			ReadTime:    "7 min read",
			Tags:        []string{"React", "Animation", "Framer Motion", "UI/UX"},
		},
		{
			Slug:        "building-restful-api-nodejs-express",
			Title:       "Building a RESTful API with Node.js and Express",
			Excerpt:     "A step-by-step guide to creating a robust RESTful API using Node.js, Express, and MongoDB for your web applications.",
			Author:      "Sami Ullah Saleem",
			PublishedAt: date(2023, time.November, 5),
			ReadTime:    "10 min read",
			Tags:        []string{"Node.js", "Express", "API", "Backend", "MongoDB"},
		},
		{
			Slug:        "optimizing-website-performance-comprehensive-guide",
			Title:       "Optimizing Website Performance: A Comprehensive Guide",
			Excerpt:     "Learn essential techniques to improve your website's loading speed, responsiveness, and overall performance.",
			Author:      "Sami Ullah Saleem",
			PublishedAt: date(2023, time.October, 18),
			ReadTime:    "9 min read",
			Tags:        []string{"Performance", "Web Development", "Optimization", "UX"},
		},
	}
}

// SampleProjects returns the eight projects used throughout the tests.
func SampleProjects() []model.Project {
	return []model.Project{
		{
			ID:           "1",
			Title:        "E-Commerce Platform",
			Description:  "A full-featured online shopping platform with user authentication, product management, shopping cart, quick search, proper logs, and secure checkout using Stripe integration.",
			Category:     "Web Development",
			Technologies: []string{"React", "Node.js", "MongoDB", "Stripe"},
			Year:         2023,
		},
		{
			ID:           "2",
			Title:        "Task Management App",
			Description:  "Developed a task management app with real-time updates, team collaboration features, and detailed analytics for productivity tracking.",
			Category:     "Web Development",
			Technologies: []string{"Next.js", "TypeScript", "PostgreSQL", "Prisma"},
			Year:         2022,
		},
		{
			ID:           "3",
			Title:        "AI Content Generator",
			Description:  "Created an AI tool that helps users generate blog posts, social media content, and marketing copy using advanced language models.",
			Category:     "AI/ML",
			Technologies: []string{"React", "Node.js", "OpenAI API", "Firebase"},
			Year:         2023,
		},
		{
			ID:           "4",
			Title:        "Portfolio Website",
			Description:  "A creative portfolio website showcasing my projects and skills with interactive elements and animations.",
			Category:     "Web Development",
			Technologies: []string{"Next.js", "TypeScript", "Tailwind CSS"},
			Year:         2023,
		},
		{
			ID:           "5",
			Title:        "Weather App",
			Description:  "A weather application that provides real-time weather data and forecasts for locations worldwide.",
			Category:     "Mobile Development",
			Technologies: []string{"React Native", "JavaScript", "Weather API"},
			Year:         2022,
		},
		{
			ID:           "6",
			Title:        "Fitness Tracker",
			Description:  "A mobile app that helps users track their workouts, set fitness goals, and monitor their progress over time.",
			Category:     "Mobile Development",
			Technologies: []string{"Flutter", "Dart", "Firebase"},
			Year:         2021,
		},
		{
			ID:           "7",
			Title:        "Blog Platform",
			Description:  "A full-featured blog platform with user authentication, content management, and commenting system.",
			Category:     "Web Development",
			Technologies: []string{"Vue.js", "Express", "MongoDB"},
			Year:         2021,
		},
		{
			ID:           "8",
			Title:        "Data Visualization Dashboard",
			Description:  "An interactive dashboard for visualizing complex data sets with customizable charts and filters.",
			Category:     "Data Science",
			Technologies: []string{"D3.js", "React", "Python", "Flask"},
			Year:         2022,
		},
	}
}

// PostCatalog builds the blog catalog from SamplePosts.
func PostCatalog(t *testing.T) *catalog.Catalog[model.BlogPost] {
	t.Helper()
	c, err := catalog.New("blog", SamplePosts())
	require.NoError(t, err, "Failed to build blog catalog")
	return c
}

// ProjectCatalog builds the projects catalog from SampleProjects.
func ProjectCatalog(t *testing.T) *catalog.Catalog[model.Project] {
	t.Helper()
	c, err := catalog.New("projects", SampleProjects())
	require.NoError(t, err, "Failed to build projects catalog")
	return c
}

// PostTitles extracts titles, keeping order.
func PostTitles(posts []model.BlogPost) []string {
	titles := make([]string, len(posts))
	for i, p := range posts {
		titles[i] = p.Title
	}
	return titles
}

// ProjectTitles extracts titles, keeping order.
func ProjectTitles(projects []model.Project) []string {
	titles := make([]string, len(projects))
	for i, p := range projects {
		titles[i] = p.Title
	}
	return titles
}

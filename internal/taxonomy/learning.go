package taxonomy

// Learning classifies a learner's goal and focus area into the domain whose
// fallback curriculum is served when generation fails.
var Learning = &Taxonomy{
	Name: "learning",
	Primary: []Entry{
		{Tag: Web, Keywords: []string{
			"web", "html", "css", "javascript", "typescript", "react", "angular",
			"vue", "svelte", "next.js", "node.js", "nodejs", "express", "django",
			"flask", "laravel", "php", "rails", "frontend", "front-end", "front end",
			"backend", "back-end", "back end", "full stack", "fullstack",
			"full-stack", "website", "rest api",
		}},
		{Tag: Mobile, Keywords: []string{
			"mobile", "android", "ios", "iphone", "ipad", "swift", "swiftui",
			"kotlin", "flutter", "dart", "react native", "xamarin",
			"jetpack compose", "app store", "play store",
		}},
		{Tag: Data, Keywords: []string{
			"data", "machine learning", "deep learning", "artificial intelligence",
			"ai", "ml", "analytics", "statistics", "pandas", "numpy", "tensorflow",
			"pytorch", "scikit", "sql", "nlp", "computer vision", "tableau",
			"power bi",
		}},
		{Tag: Cloud, Keywords: []string{
			"cloud", "aws", "azure", "gcp", "devops", "docker", "kubernetes",
			"k8s", "terraform", "ansible", "serverless", "ci/cd", "infrastructure",
			"sre", "site reliability", "linux administration",
		}},
		{Tag: Cybersecurity, Keywords: []string{
			"cybersecurity", "cyber security", "cyber", "security", "infosec",
			"penetration testing", "pentest", "ethical hacking", "hacking",
			"malware", "forensics", "soc analyst", "ctf", "owasp", "vulnerability",
		}},
		{Tag: Game, Keywords: []string{
			"game", "gaming", "gamedev", "unity", "unreal", "godot",
			"level design", "pygame", "opengl", "shader",
		}},
	},
	Broad: []Entry{
		{Tag: Web, Keywords: []string{
			"programming", "coding", "code", "developer", "software",
			"computer science",
		}},
		{Tag: Design, Keywords: []string{
			"design", "ux", "ui", "figma", "user experience", "user interface",
		}},
	},
	Default: General,
	Labels: map[Tag]string{
		Web:           "Web Development",
		Mobile:        "Mobile App Development",
		Data:          "Data Science & AI",
		Cloud:         "Cloud & DevOps",
		Cybersecurity: "Cybersecurity",
		Game:          "Game Development",
		Design:        "UI/UX Design",
		General:       "General Technology",
	},
}

package taxonomy

// Discipline is the more exhaustive vocabulary used to infer a career path
// from skills and tools. Its broad pass returns career categories rather
// than disciplines.
var Discipline = &Taxonomy{
	Name: "discipline",
	Primary: []Entry{
		{Tag: Software, Keywords: []string{
			"programming", "coding", "software development", "web dev",
			"mobile app development", "full stack", "backend", "frontend",
			"machine learning", "ai", "data analysis", "big data",
			"statistical analysis", "predictive modeling", "data visualization",
			"network security", "ethical hacking", "penetration testing",
			"information security", "cyber defense", "security analysis",
			"aws", "azure", "google cloud", "cloud architecture", "devops",
			"infrastructure", "cloud migration",
		}},
		{Tag: Civil, Keywords: []string{
			"structural design", "construction management", "urban planning",
			"infrastructure", "transportation engineering",
			"geotechnical engineering", "surveying", "civil engineering",
		}},
		{Tag: Mechanical, Keywords: []string{
			"machine design", "robotics", "manufacturing", "cad",
			"finite element analysis", "thermal engineering", "automotive design",
			"aircraft design", "spacecraft engineering", "aerodynamics",
			"propulsion systems", "mechanical engineering",
		}},
		{Tag: Electrical, Keywords: []string{
			"power systems", "control systems", "electronics", "embedded systems",
			"telecommunications", "signal processing", "renewable energy",
			"circuit design", "electrical engineering",
		}},
		{Tag: Chemical, Keywords: []string{
			"process design", "materials engineering", "biotechnology",
			"pharmaceutical engineering", "environmental engineering",
			"energy systems", "chemical engineering",
		}},
		{Tag: Industrial, Keywords: []string{
			"operations research", "supply chain", "quality management",
			"process optimization", "logistics", "systems engineering",
			"industrial engineering",
		}},
		{Tag: Professional, Keywords: []string{
			"team management", "strategic planning", "executive leadership",
			"organizational development", "change management", "public speaking",
			"negotiation", "project management", "agile", "scrum",
			"business development", "leadership",
		}},
	},
	Broad: []Entry{
		{Tag: Technology, Keywords: []string{"tech", "programming", "coding", "software", "digital", "computer"}},
		{Tag: Engineering, Keywords: []string{"engineer", "design", "system", "technical", "mechanics", "construction"}},
		{Tag: Business, Keywords: []string{"management", "strategy", "finance", "marketing", "business", "corporate"}},
		{Tag: Creative, Keywords: []string{"design", "art", "creative", "media", "visual", "graphics"}},
		{Tag: Healthcare, Keywords: []string{"health", "medical", "care", "wellness", "therapy", "patient"}},
		{Tag: Education, Keywords: []string{"teach", "learn", "research", "academic", "education", "training"}},
		{Tag: Arts, Keywords: []string{"art", "music", "performance", "creative", "entertainment", "media production"}},
	},
	Default: General,
	Labels: map[Tag]string{
		Software:     "Software Engineering",
		Civil:        "Civil Engineering",
		Mechanical:   "Mechanical Engineering",
		Electrical:   "Electrical Engineering",
		Chemical:     "Chemical Engineering",
		Industrial:   "Industrial Engineering",
		Professional: "Professional Skills",
		Technology:   "Technology",
		Engineering:  "Engineering",
		Business:     "Business",
		Creative:     "Creative",
		Healthcare:   "Healthcare",
		Education:    "Education",
		Arts:         "Arts",
		General:      "General Career Development",
	},
}

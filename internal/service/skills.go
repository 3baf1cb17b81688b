package service

import (
	"strings"
	"unicode"
)

// skillLexicon maps lowercase spellings to the display name of a skill.
var skillLexicon = map[string]string{
	"golang": "Go", "python": "Python", "java": "Java", "javascript": "JavaScript",
	"typescript": "TypeScript", "c++": "C++", "c#": "C#", "rust": "Rust", "ruby": "Ruby",
	"php": "PHP", "kotlin": "Kotlin", "swift": "Swift", "scala": "Scala",
	"sql": "SQL", "postgresql": "PostgreSQL", "postgres": "PostgreSQL", "mysql": "MySQL",
	"sqlite": "SQLite", "mongodb": "MongoDB", "redis": "Redis", "elasticsearch": "Elasticsearch",
	"kafka": "Kafka", "rabbitmq": "RabbitMQ", "docker": "Docker", "kubernetes": "Kubernetes",
	"k8s": "Kubernetes", "terraform": "Terraform", "ansible": "Ansible", "jenkins": "Jenkins",
	"aws": "AWS", "gcp": "GCP", "azure": "Azure", "linux": "Linux", "git": "Git",
	"react": "React", "angular": "Angular", "vue": "Vue", "node.js": "Node.js", "nodejs": "Node.js",
	"django": "Django", "flask": "Flask", "spring": "Spring", "graphql": "GraphQL",
	"grpc": "gRPC", "restful": "REST", "rest api": "REST", "html": "HTML", "css": "CSS",
	"machine learning": "Machine Learning", "deep learning": "Deep Learning", "nlp": "NLP",
	"natural language processing": "NLP", "computer vision": "Computer Vision",
	"tensorflow": "TensorFlow", "pytorch": "PyTorch", "scikit-learn": "scikit-learn",
	"pandas": "Pandas", "numpy": "NumPy", "spark": "Spark", "hadoop": "Hadoop", "airflow": "Airflow",
	"microservices": "Microservices", "agile": "Agile", "scrum": "Scrum", "microsoft excel": "Excel",
	"tableau": "Tableau", "power bi": "Power BI", "figma": "Figma", "salesforce": "Salesforce",
	"jira": "Jira", "ci/cd": "CI/CD", "devops": "DevOps", "data analysis": "Data Analysis",
	"project management": "Project Management",
}

// maxSkillWords is the longest lexicon phrase in words.
const maxSkillWords = 3

// ExtractSkills returns the lexicon skills mentioned in text, in order of
// first mention and without duplicates.
func ExtractSkills(text string) []string {
	tokens := skillTokens(text)
	skills := make([]string, 0)
	seen := make(map[string]bool)

	for i := 0; i < len(tokens); {
		matched := 0
		for n := maxSkillWords; n >= 1; n-- {
			if i+n > len(tokens) {
				continue
			}
			name, ok := skillLexicon[strings.Join(tokens[i:i+n], " ")]
			if !ok {
				continue
			}
			if !seen[name] {
				seen[name] = true
				skills = append(skills, name)
			}
			matched = n
			break
		}
		if matched == 0 {
			matched = 1
		}
		i += matched
	}
	return skills
}

// skillTokens splits text while keeping the symbols that appear inside
// skill names such as C++, C#, Node.js and CI/CD.
func skillTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("+#./-", r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "./-"); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

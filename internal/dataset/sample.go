package dataset

import "github.com/project-tktt/jobs-market/internal/domain"

// fallbackRows is served when no usable CSV dataset is on disk
var fallbackRows = []domain.RawRow{
	sampleRow("AI Engineer", "142000", "Mid", "Engineering", "United States", "50", "Python, Machine Learning, Docker, AWS", "Bachelor's Degree", "Enterprise", "2025-01-14"),
	sampleRow("AI Engineer", "168000", "Senior", "Engineering", "Canada", "100", "Python, MLOps, Kubernetes, TensorFlow", "Master's Degree", "Large", "2025-02-03"),
	sampleRow("Data Scientist", "131000", "Mid", "Data Science", "Germany", "50", "Python, SQL, Statistics, Scikit-learn", "Master's Degree", "Medium", "2025-02-12"),
	sampleRow("Data Scientist", "118000", "Entry", "Data Science", "India", "0", "Python, SQL, Data Visualization, Pandas", "Bachelor's Degree", "Large", "2025-03-01"),
	sampleRow("Machine Learning Engineer", "158000", "Senior", "Machine Learning", "United States", "100", "Python, TensorFlow, PyTorch, MLOps", "Master's Degree", "Enterprise", "2025-03-20"),
	sampleRow("Machine Learning Engineer", "136000", "Mid", "Machine Learning", "United Kingdom", "50", "Python, PyTorch, Feature Engineering, Git", "Bachelor's Degree", "Medium", "2025-04-07"),
	sampleRow("AI Product Manager", "154000", "Senior", "Product", "United States", "0", "Product Strategy, AI Fundamentals, Stakeholder Management, SQL", "Bachelor's Degree", "Large", "2025-04-29"),
	sampleRow("AI Product Analyst", "112000", "Entry", "Product", "Singapore", "50", "SQL, Analytics, Experimentation, Python", "Bachelor's Degree", "Medium", "2025-05-09"),
	sampleRow("Computer Vision Engineer", "149000", "Mid", "Research", "France", "50", "Python, OpenCV, Deep Learning, C++", "Master's Degree", "Small", "2025-05-25"),
	sampleRow("NLP Engineer", "151000", "Senior", "Research", "United States", "100", "Python, NLP, Transformers, PyTorch", "PhD", "Enterprise", "2025-06-11"),
	sampleRow("AI Research Scientist", "176000", "Executive", "Research", "Switzerland", "0", "Deep Learning, Research Methods, Python, Papers", "PhD", "Enterprise", "2025-06-28"),
	sampleRow("Data Engineer (AI Platform)", "139000", "Mid", "Engineering", "Netherlands", "50", "Python, Spark, SQL, Airflow", "Bachelor's Degree", "Large", "2025-07-16"),
	sampleRow("Prompt Engineer", "121000", "Entry", "Applied AI", "Australia", "100", "Prompt Design, LLMs, Python, Communication", "Bachelor's Degree", "Small", "2025-08-02"),
	sampleRow("LLM Application Developer", "146000", "Mid", "Applied AI", "United States", "100", "Python, APIs, LangChain, Vector Databases", "Bachelor's Degree", "Medium", "2025-08-17"),
	sampleRow("AI Solutions Architect", "170000", "Senior", "Architecture", "United States", "50", "Cloud, System Design, MLOps, Security", "Bachelor's Degree", "Enterprise", "2025-09-05"),
}

func sampleRow(title, salary, level, category, location, remote, skills, education, size, posted string) domain.RawRow {
	return domain.RawRow{
		"job_title":          title,
		"salary_usd":         salary,
		"experience_level":   level,
		"job_category":       category,
		"company_location":   location,
		"remote_ratio":       remote,
		"required_skills":    skills,
		"education_required": education,
		"company_size":       size,
		"posted_date":        posted,
	}
}

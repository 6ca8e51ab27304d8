package services

// TrainingSample is one labelled resume excerpt.
type TrainingSample struct {
	Text     string
	Category string
}

// TrainingCorpus seeds the role classifier when no persisted model exists.
var TrainingCorpus = []TrainingSample{
	{
		Text:     "Python, Django, Flask, REST API development, SQL & relational databases, backend architecture, authentication, performance optimization. Experienced in building secure, scalable, and high-performance backend systems using Python frameworks and database-driven architectures.",
		Category: "Software Engineer",
	},
	{
		Text:     "Java, Spring Boot, Microservices architecture, OOP principles, RESTful services, system design, scalability. Specialized in enterprise-grade Java applications with clean object-oriented design and distributed microservices systems.",
		Category: "Software Engineer",
	},
	{
		Text:     "React.js, JavaScript, HTML5, CSS3, UI/UX design, responsive layouts, component-based architecture. Focused on creating interactive, user-friendly, and visually appealing web interfaces with modern frontend technologies.",
		Category: "Web Developer",
	},
	{
		Text:     "Next.js, Tailwind CSS, Redux, responsive design, SSR, performance optimization. Builds fast, SEO-friendly, and scalable web applications with modern React frameworks and state management.",
		Category: "Web Developer",
	},
	{
		Text:     "Machine Learning, PyTorch, TensorFlow, AI models, Deep Learning, model training & evaluation. Develops intelligent systems and predictive models using state-of-the-art deep learning frameworks and techniques.",
		Category: "AI/ML Engineer",
	},
	{
		Text:     "Natural Language Processing, Computer Vision, Data Science, feature engineering, model deployment. Experienced in extracting insights from text, image, and structured data using advanced AI and data science methods.",
		Category: "AI/ML Engineer",
	},
	{
		Text:     "Jenkins, Docker, Kubernetes, AWS, CI/CD pipelines, cloud infrastructure, automation. Ensures reliable deployment, scalability, and automation of applications through modern DevOps practices and cloud platforms.",
		Category: "DevOps/Cloud Engineer",
	},
	{
		Text:     "Linux, Terraform, Ansible, Azure, infrastructure as code, configuration management. Designs and manages cloud infrastructure using IaC tools for secure, repeatable, and efficient deployments.",
		Category: "DevOps/Cloud Engineer",
	},
	{
		Text:     "Data Analysis, Pandas, NumPy, Data Visualization, Statistics, EDA, insights generation. Transforms raw data into meaningful insights and actionable decisions through analytical and statistical techniques.",
		Category: "Data Scientist",
	},
	{
		Text:     "Node.js, React, MongoDB, Express.js, MERN stack, REST APIs, full-stack architecture. Builds complete end-to-end web applications, handling both frontend and backend with scalable full-stack solutions.",
		Category: "FullStack Developer",
	},
}

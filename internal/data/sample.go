package data

// SampleSet is the hand-written seed dataset used when no CSV exists yet.
var SampleSet = TrainingSet{
	{"Test", "Development"},
	{"Development", "Development"},
	{"Build new API endpoint for user authentication", "Development"},
	{"Fix bug in payment processing", "Development"},
	{"Implement React component for dashboard", "Development"},
	{"Set up CI/CD pipeline", "Development"},
	{"Refactor database queries", "Development"},
	{"Add TypeScript types", "Development"},

	{"Marketing", "Marketing"},
	{"Create social media campaign", "Marketing"},
	{"Design email newsletter", "Marketing"},
	{"Plan product launch strategy", "Marketing"},
	{"Analyze user engagement metrics", "Marketing"},
	{"Write blog post about features", "Marketing"},
	{"SEO optimization for landing page", "Marketing"},

	{"Design", "Design"},
	{"Design new logo", "Design"},
	{"Create wireframes for mobile app", "Design"},
	{"Update color scheme", "Design"},
	{"Design marketing materials", "Design"},
	{"Create UI mockups", "Design"},
	{"Redesign user profile page", "Design"},

	{"Research", "Research"},
	{"Research competitor features", "Research"},
	{"User research interviews", "Research"},
	{"Analyze market trends", "Research"},
	{"Investigate new technologies", "Research"},
	{"Study user behavior patterns", "Research"},
	{"Benchmark performance", "Research"},

	{"Operations", "Operations"},
	{"Set up monitoring dashboard", "Operations"},
	{"Configure cloud infrastructure", "Operations"},
	{"Implement backup strategy", "Operations"},
	{"Optimize server performance", "Operations"},
	{"Database maintenance", "Operations"},
	{"Update security policies", "Operations"},
}

// WriteSample writes SampleSet to outPath as a text,category CSV.
func WriteSample(outPath string) error {
	return WriteTrainingSet(outPath, SampleSet)
}

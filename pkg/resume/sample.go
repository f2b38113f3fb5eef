package resume

// Sample returns a filled-in document used when a user starts from a template.
func Sample() (data *Data) {
	data = &Data{
		Personal: Personal{
			FullName: "Alex Morgan",
			Title:    "Senior Software Engineer",
			Email:    "alex.morgan@example.com",
			Phone:    "+1 555 0100",
			Location: "Portland, OR",
			Website:  "https://alexmorgan.dev",
			Summary:  "Backend engineer focused on reliable distributed systems and developer tooling.",
			Extras: []PersonalExtra{
				{Label: "Availability", Value: "Immediate"},
			},
		},
		Experience: []ExperienceItem{
			{
				Company:   "Northwind Systems",
				Role:      "Senior Software Engineer",
				Location:  "Remote",
				StartDate: "2021-03",
				EndDate:   "Present",
				Highlights: []string{
					"Led the migration of the billing pipeline to an event-driven architecture",
					"Cut p99 API latency by 40% through query and cache tuning",
				},
			},
			{
				Company:   "Contoso",
				Role:      "Software Engineer",
				Location:  "Seattle, WA",
				StartDate: "2017-06",
				EndDate:   "2021-02",
				Highlights: []string{
					"Built the internal deployment CLI used by 200+ engineers",
				},
			},
		},
		Projects: []ProjectItem{
			{
				Name:        "logtail",
				Role:        "Maintainer",
				Link:        "https://github.com/example/logtail",
				Description: "Structured log follower with filtering and highlighting.",
				Highlights:  []string{"1.2k GitHub stars"},
			},
		},
		Education: []EducationItem{
			{
				School:    "Oregon State University",
				Degree:    "B.S.",
				Field:     "Computer Science",
				StartDate: "2013-09",
				EndDate:   "2017-06",
			},
		},
		Skills: []SkillItem{
			{Name: "Languages", Keywords: []string{"Go", "Python", "SQL"}},
			{Name: "Infrastructure", Keywords: []string{"Kubernetes", "Terraform", "PostgreSQL"}},
		},
		Languages: []LanguageItem{
			{Name: "English", Level: "Native"},
			{Name: "Spanish", Level: "Professional"},
		},
		Socials: []SocialItem{
			{Network: "GitHub", Username: "alexmorgan", URL: "https://github.com/alexmorgan"},
		},
	}

	Repair(data)
	return data
}

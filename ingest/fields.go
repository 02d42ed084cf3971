package ingest

// Candidate header spellings per logical field, kept as data rather than
// code branches so new roll formats only ever touch these tables. Order
// matters: the resolver walks each list front to back inside a tier, so put
// the most specific spellings first.
//
// The English and Marathi name/gender sets are deliberately disjoint. The
// transformer relies on that to keep the two scripts independent.
var (
	serialLabels = []string{
		"serial no", "sr no", "sr.no.", "s no", "sno", "serial number",
		"अनु क्र.", "अनु क्रमांक", "अ क्र",
	}

	houseLabels = []string{
		"house no", "house number", "house no.",
		"घर क्र.", "घर क्रमांक",
	}

	ageLabels = []string{
		"age", "age years", "age (years)", "वय",
	}

	voterIDLabels = []string{
		"voter id card", "voter id", "epic no", "epic number", "epic",
		"id card no", "card no",
		"मतदार ओळखपत्र", "ओळखपत्र क्र.",
	}

	mobileLabels = []string{
		"mobile no", "mobile number", "mobile",
		"phone no", "phone number", "phone", "contact no",
		"मोबाईल क्र.", "मोबाईल",
	}

	nameEnLabels = []string{
		"name_en", "name en", "name english", "name (english)",
		"english name", "voter name english", "name in english",
	}

	nameMrLabels = []string{
		"name_mr", "name mr", "name marathi", "name (marathi)",
		"marathi name", "voter name marathi", "name in marathi",
		"मतदाराचे नाव", "नाव",
	}

	// Legacy single-column sheets: consulted only when neither
	// language-specific name column exists anywhere in the row.
	nameGenericLabels = []string{
		"voter name", "full name", "name",
	}

	genderEnLabels = []string{
		"gender_en", "gender en", "gender english", "gender (english)", "sex",
	}

	genderMrLabels = []string{
		"gender_mr", "gender mr", "gender marathi", "gender (marathi)", "लिंग",
	}

	genderGenericLabels = []string{
		"gender",
	}
)

// headerTokenGroups drive the header locator. A candidate row earns one
// point per group whose tokens appear as a normalized substring of any cell.
// Seven groups, so a perfect header scores 7.
var headerTokenGroups = [][]string{
	{"name", "नाव"},
	{"serial", "sr no", "sno", "अनु"},
	{"house", "घर"},
	{"gender", "sex", "लिंग"},
	{"age", "वय"},
	{"voter id", "epic", "ओळखपत्र"},
	{"mobile", "phone", "मोबाईल"},
}

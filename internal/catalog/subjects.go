package catalog

// defaultSubjects lists the O/L and A/L subjects documents can be filed under.
// Order matters: FuzzyMatch reports matches in this order.
var defaultSubjects = []Subject{
	{ID: "mathematics", Name: "Mathematics", Aliases: []string{"maths", "math", "ganithaya", "ගණිතය", "கணிதம்"}},
	{ID: "combined_mathematics", Name: "Combined Mathematics", Aliases: []string{"combined maths", "c maths", "sanyuktha ganithaya"}},
	{ID: "higher_mathematics", Name: "Higher Mathematics", Aliases: []string{"higher maths", "advanced maths"}},
	{ID: "science", Name: "Science", Aliases: []string{"vidyawa", "විද්‍යාව", "விஞ்ஞானம்"}},
	{ID: "physics", Name: "Physics", Aliases: []string{"bhauthika", "bhauthika vidyawa", "பௌதிகவியல்"}},
	{ID: "chemistry", Name: "Chemistry", Aliases: []string{"rasayana", "rasayana vidyawa", "இரசாயனவியல்"}},
	{ID: "biology", Name: "Biology", Aliases: []string{"bio", "jeewa vidyawa", "உயிரியல்"}},
	{ID: "agricultural_science", Name: "Agricultural Science", Aliases: []string{"agriculture", "agri", "krushi vidyawa"}},
	{ID: "information_technology", Name: "Information & Communication Technology", Aliases: []string{"ict", "information technology", "computer"}},
	{ID: "engineering_technology", Name: "Engineering Technology", Aliases: []string{"etech", "engineering tech"}},
	{ID: "bio_systems_technology", Name: "Bio Systems Technology", Aliases: []string{"bst", "biosystems"}},
	{ID: "science_for_technology", Name: "Science for Technology", Aliases: []string{"sft"}},
	{ID: "accounting", Name: "Accounting", Aliases: []string{"accounts", "கணக்கீடு"}},
	{ID: "business_studies", Name: "Business Studies", Aliases: []string{"business", "vyapara adhyayanaya"}},
	{ID: "business_accounting_studies", Name: "Business & Accounting Studies", Aliases: []string{"commerce", "business and accounting"}},
	{ID: "economics", Name: "Economics", Aliases: []string{"econ", "arthika vidyawa", "பொருளியல்"}},
	{ID: "entrepreneurship_studies", Name: "Entrepreneurship Studies", Aliases: []string{"entrepreneurship"}},
	{ID: "geography", Name: "Geography", Aliases: []string{"bhugolaya", "பூகோளம்"}},
	{ID: "history", Name: "History", Aliases: []string{"ithihasaya", "இதிகாசம்", "வரலாறு"}},
	{ID: "political_science", Name: "Political Science", Aliases: []string{"politics", "deshapalana vidyawa"}},
	{ID: "logic_scientific_method", Name: "Logic & Scientific Method", Aliases: []string{"logic", "tharka shasthraya"}},
	{ID: "civic_education", Name: "Civic Education", Aliases: []string{"civics", "purawasi adhyapanaya"}},
	{ID: "buddhism", Name: "Buddhism", Aliases: []string{"buddha dharmaya", "බුද්ධ ධර්මය"}},
	{ID: "buddhist_civilization", Name: "Buddhist Civilization", Aliases: []string{"bauddha shishtachaaraya"}},
	{ID: "hinduism", Name: "Hinduism", Aliases: []string{"saivaneri", "சைவநெறி"}},
	{ID: "hindu_civilization", Name: "Hindu Civilization", Aliases: []string{"hindu nagarikam"}},
	{ID: "christianity", Name: "Christianity", Aliases: []string{"catholicism", "kristhiyani"}},
	{ID: "christian_civilization", Name: "Christian Civilization", Aliases: []string{"christian civ"}},
	{ID: "islam", Name: "Islam", Aliases: []string{"islamic studies"}},
	{ID: "islamic_civilization", Name: "Islamic Civilization", Aliases: []string{"islamic civ"}},
	{ID: "health_physical_education", Name: "Health & Physical Education", Aliases: []string{"health", "saukhya"}},
	{ID: "art", Name: "Art", Aliases: []string{"chithra", "drawing", "சித்திரம்"}},
	{ID: "dancing", Name: "Dancing", Aliases: []string{"dance", "natum", "நடனம்"}},
	{ID: "oriental_music", Name: "Oriental Music", Aliases: []string{"eastern music", "sangeethaya"}},
	{ID: "western_music", Name: "Western Music", Aliases: []string{"piano theory"}},
	{ID: "carnatic_music", Name: "Carnatic Music", Aliases: []string{"karnatic", "கர்நாடக சங்கீதம்"}},
	{ID: "drama_theatre", Name: "Drama & Theatre", Aliases: []string{"drama", "theatre", "natya"}},
	{ID: "home_economics", Name: "Home Economics", Aliases: []string{"gruha vidyawa"}},
	{ID: "communication_media_studies", Name: "Communication & Media Studies", Aliases: []string{"media", "media studies"}},
	{ID: "design_technology", Name: "Design & Construction Technology", Aliases: []string{"design", "construction technology"}},
	{ID: "english", Name: "English Language", Aliases: []string{"english lang", "ingrisi"}},
	{ID: "sinhala_language_literature", Name: "Sinhala Language & Literature", Aliases: []string{"sinhala", "sinhala bhashawa", "සිංහල"}},
	{ID: "tamil_language_literature", Name: "Tamil Language & Literature", Aliases: []string{"tamil", "தமிழ்"}},
	{ID: "english_literary_texts", Name: "Appreciation of English Literary Texts", Aliases: []string{"english literature", "english lit"}},
	{ID: "sinhala_literary_texts", Name: "Appreciation of Sinhala Literary Texts", Aliases: []string{"sinhala sahithya", "sinhala literature"}},
	{ID: "tamil_literary_texts", Name: "Appreciation of Tamil Literary Texts", Aliases: []string{"tamil ilakkiyam", "tamil literature"}},
	{ID: "arabic_literary_texts", Name: "Appreciation of Arabic Literary Texts", Aliases: []string{"arabic literature"}},
	{ID: "second_language_sinhala", Name: "Second Language (Sinhala)", Aliases: []string{"sinhala second language"}},
	{ID: "second_language_tamil", Name: "Second Language (Tamil)", Aliases: []string{"tamil second language"}},
	{ID: "pali", Name: "Pali", Aliases: []string{"පාලි"}},
	{ID: "french", Name: "French", Aliases: []string{"francais"}},
	{ID: "japanese", Name: "Japanese", Aliases: []string{"nihongo"}},
}

// literatureKeywords mark a query as being about language and literature subjects.
var literatureKeywords = []string{
	"literature",
	"literary",
	"sahithya",
	"sahitya",
	"ilakkiyam",
	"poetry",
	"poems",
	"novel",
	"සාහිත්‍ය",
	"இலக்கியம்",
}

var literatureSuffixes = []string{"_literary_texts", "_language_literature"}

// noiseTerms describe what kind of document is wanted rather than which subject.
// Longer phrases come first so they are stripped before their parts.
var noiseTerms = []string{
	"marking schemes",
	"marking scheme",
	"model papers",
	"model paper",
	"past papers",
	"past paper",
	"short notes",
	"term test",
	"textbooks",
	"textbook",
	"questions",
	"answers",
	"papers",
	"paper",
	"notes",
	"books",
	"book",
	"past",
	"pdf",
	"ol",
	"al",
}

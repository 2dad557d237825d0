package conversation

// Fixed lexicons for the conversation analyzer. Arabic first, with English
// fallbacks where users mix languages.

// arabicStopWords are stripped before keyword counting.
var arabicStopWords = map[string]bool{
	"في": true, "من": true, "إلى": true, "الى": true, "على": true,
	"عن": true, "مع": true, "هذا": true, "هذه": true, "ذلك": true,
	"تلك": true, "التي": true, "الذي": true, "ما": true, "ماذا": true,
	"هل": true, "لا": true, "نعم": true, "أن": true, "ان": true,
	"كان": true, "كانت": true, "هو": true, "هي": true, "انا": true,
	"أنا": true, "انت": true, "أنت": true, "نحن": true, "هم": true,
	"كل": true, "بعض": true, "غير": true, "بين": true, "بعد": true,
	"قبل": true, "عند": true, "حتى": true, "اذا": true, "إذا": true,
	"لكن": true, "أو": true, "او": true, "ثم": true, "قد": true,
	// Minimal English set for mixed-language messages
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"to": true, "of": true, "and": true, "or": true, "in": true,
	"on": true, "at": true, "for": true, "it": true, "me": true,
	"my": true, "i": true, "you": true, "we": true, "do": true,
	"does": true, "can": true, "how": true, "what": true, "this": true,
}

// interrogativeLeads mark a query as a question when it starts with one.
var interrogativeLeads = []string{
	"ما", "ماذا", "من", "متى", "أين", "اين", "كيف", "لماذا", "هل", "كم", "أي", "اي",
	"what", "who", "when", "where", "how", "why", "which", "can", "is", "are", "do", "does",
}

// topicDictionaries map fixed topic names to their keyword sets.
var topicDictionaries = map[string][]string{
	"health":        {"صحة", "مرض", "دواء", "طبيب", "علاج", "تمارين", "رياضة", "نوم", "health", "doctor", "medicine", "sleep", "fitness"},
	"tech":          {"تقنية", "هاتف", "تطبيق", "برنامج", "حاسوب", "انترنت", "إنترنت", "tech", "phone", "app", "software", "computer", "internet"},
	"education":     {"تعليم", "دراسة", "جامعة", "مدرسة", "امتحان", "دورة", "كتاب", "study", "university", "school", "exam", "course", "book"},
	"sports":        {"كرة", "مباراة", "فريق", "دوري", "لاعب", "بطولة", "football", "match", "team", "league", "player"},
	"food":          {"طعام", "طبخ", "وصفة", "مطعم", "أكل", "اكل", "food", "cooking", "recipe", "restaurant"},
	"news":          {"أخبار", "اخبار", "عاجل", "سياسة", "حكومة", "اقتصاد", "news", "breaking", "politics", "government"},
	"travel":        {"سفر", "رحلة", "فندق", "طيران", "تذكرة", "سياحة", "travel", "trip", "hotel", "flight", "ticket"},
	"entertainment": {"فيلم", "مسلسل", "أغنية", "اغنية", "موسيقى", "لعبة", "ترفيه", "movie", "series", "song", "music", "game"},
}

// contextPhraseSets classify what a conversation was mostly doing.
var contextPhraseSets = map[string][]string{
	"inquiry":      {"ما هو", "ما هي", "ماذا", "كيف", "لماذا", "متى", "أين", "what", "how", "why", "when", "where"},
	"help_request": {"ساعدني", "ساعديني", "أحتاج", "احتاج", "ممكن", "أريد", "اريد", "help", "need", "please", "could you"},
	"command":      {"افتح", "شغل", "شغّل", "أرسل", "ارسل", "اتصل", "ذكرني", "ذكّرني", "ابحث", "open", "play", "send", "call", "remind", "search"},
	"general_chat": {"مرحبا", "أهلا", "اهلا", "صباح", "مساء", "شكرا", "شكراً", "hello", "hi", "thanks", "good morning", "good evening"},
}

// dialectLexicons drive dialect-usage counting by substring match.
var dialectLexicons = map[string][]string{
	"egyptian":  {"ازيك", "إزيك", "عامل ايه", "كده", "اوي", "أوي", "دلوقتي", "عايز", "فين"},
	"gulf":      {"شلونك", "وش", "ابغى", "أبغى", "زين", "الحين", "وايد", "ليش"},
	"levantine": {"كيفك", "شو", "هيك", "بدي", "هلق", "منيح", "ليش", "وين"},
	"msa":       {"كيف حالك", "ماذا", "أريد", "الآن", "جيد", "لماذا", "أين"},
}

package porter2

// exceptions maps whole words to their stems. A hit bypasses every step.
var exceptions = map[string]string{
	"skis":  "ski",
	"skies": "sky",
	"dying": "die",
	"lying": "lie",
	"tying": "tie",

	"idly":   "idl",
	"gently": "gentl",
	"ugly":   "ugli",
	"early":  "earli",
	"only":   "onli",
	"singly": "singl",

	// invariant forms
	"sky":    "sky",
	"news":   "news",
	"howe":   "howe",
	"atlas":  "atlas",
	"cosmos": "cosmos",
	"bias":   "bias",
	"andes":  "andes",
}

// post1aExceptions are left as they are once step 1a has run.
var post1aExceptions = map[string]struct{}{
	"inning":  {},
	"outing":  {},
	"canning": {},
	"herring": {},
	"earring": {},
	"proceed": {},
	"exceed":  {},
	"succeed": {},
}

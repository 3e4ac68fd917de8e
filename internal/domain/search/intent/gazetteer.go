package intent

// stateNames and suburbs are matched as whole-word phrases.
var stateNames = []string{
	"victoria",
	"new south wales",
	"queensland",
	"western australia",
	"south australia",
	"tasmania",
	"northern territory",
	"australian capital territory",
}

// stateAbbreviations are matched only as whole tokens. sa, wa, nt, act and tas are
// left out: they collide with ordinary words.
var stateAbbreviations = []string{"vic", "nsw", "qld"}

// postcodeDenylist holds 4-digit runs that are phone prefixes, not postcodes.
var postcodeDenylist = map[string]struct{}{
	"1300": {},
	"1800": {},
}

// suburbs covers metropolitan Melbourne and the larger regional Victorian centres.
// Names that are everyday words ("sale", "reservoir", "rye") are left out.
var suburbs = []string{
	// inner
	"carlton", "fitzroy", "richmond", "collingwood", "brunswick", "footscray",
	"north melbourne", "west melbourne", "east melbourne", "south melbourne",
	"port melbourne", "docklands", "kensington", "flemington", "parkville",
	"princes hill", "south yarra", "toorak", "albert park", "middle park",
	"st kilda", "elwood", "prahran", "windsor", "abbotsford", "cremorne",
	// north
	"preston", "thornbury", "northcote", "coburg", "essendon", "moonee ponds",
	"ascot vale", "avondale heights", "heidelberg", "rosanna", "greensborough",
	"montmorency", "eltham", "bundoora", "epping", "broadmeadows",
	// west
	"newport", "williamstown", "yarraville", "seddon", "altona", "sunshine",
	"albion", "deer park", "st albans", "keilor", "taylors lakes", "sydenham",
	"caroline springs", "burnside", "hillside", "melton", "rockbank", "tarneit",
	"werribee", "hoppers crossing", "point cook", "laverton", "seabrook",
	"truganina", "williams landing", "manor lakes",
	// east
	"hawthorn", "camberwell", "surrey hills", "balwyn", "kew", "doncaster",
	"templestowe", "bulleen", "warrandyte", "donvale", "box hill", "burwood",
	"ashburton", "glen iris", "malvern", "armadale", "ringwood", "croydon",
	"croydon south", "mitcham", "nunawading", "blackburn", "vermont",
	"forest hill", "bayswater", "boronia", "ferntree gully", "wantirna",
	"scoresby", "knoxfield", "rowville",
	// south-east
	"caulfield", "glen waverley", "mount waverley", "wheelers hill", "mulgrave",
	"chadstone", "ashwood", "huntingdale", "hughesdale", "murrumbeena",
	"carnegie", "ormond", "bentleigh", "mckinnon", "clayton", "oakleigh",
	"springvale", "noble park", "keysborough", "dandenong", "cranbourne",
	"berwick", "narre warren", "pakenham",
	// bayside and peninsula
	"brighton", "hampton", "hampton east", "sandringham", "highett", "beaumaris",
	"black rock", "cheltenham", "mentone", "mordialloc", "edithvale", "chelsea",
	"bonbeach", "seaford", "frankston", "langwarrin", "mornington",
	"mount martha", "rosebud", "sorrento",
	// regional
	"geelong", "ballarat", "bendigo", "shepparton", "wangaratta", "wodonga",
	"warrnambool", "mildura", "traralgon", "horsham",
	// city
	"melbourne",
}

// proximityMarkers signal that the user wants something nearby. They are matched
// against space-padded text so that "in" never matches inside a word.
var proximityMarkers = []string{
	" near ", " in ", " around ", " nearby ", " close to ", " within ",
}

// serviceCategory maps a category to its synonym phrases.
type serviceCategory struct {
	name     string
	synonyms []string
}

// serviceCategories is ordered so extraction output is deterministic.
var serviceCategories = []serviceCategory{
	{"anxiety", []string{"anxiety", "anxious", "panic", "worry"}},
	{"depression", []string{"depression", "depressed", "sad", "low mood"}},
	{"counselling", []string{"counseling", "counselling", "therapy", "therapist"}},
	{"psychology", []string{"psychology", "psychologist", "psych"}},
	{"psychiatry", []string{"psychiatry", "psychiatrist"}},
	{"crisis", []string{"crisis", "emergency", "urgent", "suicide"}},
	{"youth", []string{"youth", "young people", "adolescent", "teen", "teenager"}},
	{"family", []string{"family", "couples", "relationship"}},
	{"addiction", []string{"addiction", "alcohol", "drugs", "substance"}},
}

// Free indicators are checked before paid ones: "no cost" also contains "cost".
var (
	freeIndicators = []string{"free", "no cost", "bulk bill", "bulk-bill", "medicare"}
	paidIndicators = []string{"paid", "private", "fee", "cost"}
)

var onlineIndicators = []string{"online", "telehealth", "virtual"}

var crisisIndicators = []string{
	"suicide", "crisis", "emergency", "urgent", "immediate",
	"help me", "can't cope", "desperate",
}

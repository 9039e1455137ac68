package domain

// Option catalogs for the photorealism studio. Free-text fields accept any
// string; these lists back the select controls and the randomizer.

var Genders = []string{
	"female",
	"male",
	"non-binary person",
}

var Ethnicities = []string{
	"East Asian",
	"Southeast Asian",
	"South Asian",
	"European",
	"African",
	"Latin American",
	"Middle Eastern",
	"Mixed heritage",
}

var DressStyles = []string{
	"Ancient Chinese Dress",
	"Vietnamese Ao Dai",
	"Hanfu",
	"Qipao",
	"Modern Minimalist Gown",
	"Bohemian Beach Sundress",
	"Cyberpunk Techwear Jacket",
	"Japanese Kimono",
	"Korean Hanbok",
	"Indian Saree",
	"Gothic Victorian Ballgown",
	"Avant-Garde Sculptural Piece",
	"Casual Streetwear (Hoodie and Jeans)",
	"Business Chic Blazer and Trousers",
	"Mermaid Tail Skirt",
}

// DressDetails maps a dress style to its ordered list of valid detail
// strings. The first entry is the default applied when the style changes.
var DressDetails = map[string][]string{
	"Ancient Chinese Dress": {
		"Intricate silk embroidery of phoenixes and peonies",
		"Wide, flowing sleeves that brush the floor",
		"Layers of translucent silk in gradient colors",
		"Hem adorned with fine gold thread patterns",
		"Lightweight gauze fabric, ethereal and semi-transparent",
	},
	"Vietnamese Ao Dai": {
		"Sheer, fitted tunic over wide satin trousers",
		"Hand-painted lotus flowers on the silk fabric",
		"High collar with delicate pearl closures",
		"Side slits reaching up to the waist",
		"Flowing, double-layered fabric for a soft silhouette",
	},
	"Hanfu": {
		"Crossed collar with the right side over the left",
		"Floor-length skirt with a high waistband",
		"Extremely wide sleeves, typical of the Tang Dynasty",
		"A decorative silk sash known as a 'da dai'",
		"Pleated skirt giving a graceful swing",
	},
	"Qipao": {
		"High, mandarin collar",
		"Asymmetrical, diagonal opening fastened with frog buttons",
		"Body-hugging silhouette that accentuates curves",
		"Made from luxurious silk brocade with floral patterns",
		"Thigh-high side slits for ease of movement",
	},
	"Modern Minimalist Gown": {
		"Clean, architectural lines and a simple silhouette",
		"Made from a single piece of heavy crepe fabric",
		"Asymmetrical, single-shoulder design",
		"A sharp, geometric neckline",
		"A muted, monochromatic color palette",
	},
	"Bohemian Beach Sundress": {
		"Lightweight, breathable cotton with crochet lace inserts",
		"Tiered, ruffled skirt that moves with the breeze",
		"Spaghetti straps that tie at the shoulders",
		"Ankle-length maxi style",
		"Raw, frayed hem for a relaxed vibe",
	},
	"Cyberpunk Techwear Jacket": {
		"Integrated LED light strips along the seams",
		"Asymmetrical zippers and multiple utility straps",
		"Water-resistant, matte black technical fabric",
		"Reflective, holographic patches",
		"Detachable hood with a built-in visor",
	},
	"Japanese Kimono": {
		"Traditional T-shape with long, rectangular sleeves",
		"An 'obi' sash tied in an elaborate bow at the back",
		"Made from silk with hand-painted nature motifs",
		"A furisode style with sleeves sweeping the floor",
		"Lined with a contrasting red silk",
	},
	"Korean Hanbok": {
		"A short, jacket-like 'jeogori' top",
		"A full, high-waisted 'chima' skirt",
		"Vibrant, contrasting colors like pink and light green",
		"A long, flowing ribbon that ties at the chest",
		"Gold leaf print on the chima",
	},
	"Indian Saree": {
		"A six-yard-long drape of luxurious silk",
		"An intricately embroidered 'zari' border",
		"A heavily embellished 'pallu' end piece",
		"Banarasi silk with woven gold patterns",
		"Rich, jewel-toned colors like emerald and ruby",
	},
	"Gothic Victorian Ballgown": {
		"Constructed with black velvet and deep crimson satin",
		"A tight, boned corset that cinches the waist",
		"A voluminous bustle and a floor-sweeping train",
		"High, lace-trimmed collar",
		"Layers of ruffled black lace",
	},
	"Avant-Garde Sculptural Piece": {
		"Made from unconventional materials like molded plastic or metal",
		"A dramatic, exaggerated silhouette that defies gravity",
		"Three-dimensional, origami-like folds",
		"Asymmetrical and deconstructed design",
		"Features sharp, unexpected angles",
	},
	"Casual Streetwear (Hoodie and Jeans)": {
		"An oversized, soft fleece hoodie",
		"Distressed, light-wash denim jeans with rips",
		"The hoodie has a bold graphic print on the back",
		"Layered with a simple white t-shirt underneath",
		"Jeans have a raw, frayed hem",
	},
	"Business Chic Blazer and Trousers": {
		"A sharply tailored, double-breasted blazer",
		"High-waisted, wide-leg trousers that pool at the floor",
		"A monochromatic look in a power color like cream or navy",
		"Gold, statement buttons on the blazer",
		"A structured, minimalist silhouette",
	},
	"Mermaid Tail Skirt": {
		"A dramatic, floor-length skirt tight to the knees that flares out",
		"Covered in shimmering, iridescent sequins",
		"The flare is made of layers of tulle, like seafoam",
		"A high-waisted design",
		"A train that trails beautifully",
	},
}

var HairStyles = []string{
	"Long, silky, perfectly straight hair cascading down her back",
	"Voluminous, glossy waves framing her face and shoulders",
	"A graceful half-up, half-down style with soft tendrils",
	"A single, thick, intricate braid woven with silk ribbons",
	"Loose, romantic curls piled high in an elegant updo",
	"Sleek, high ponytail that flows like a waterfall",
	"Effortlessly tousled, long beachy waves with sun-kissed highlights",
	"A complex, traditional braided bun held with ornate pins",
	"Long hair with gentle, face-framing layers and curtain bangs",
	"A low, loose bun at the nape of the neck with escaping strands",
}

var HairAccessories = []string{
	"None",
	"A single, perfect pearl pin holding back a section of hair",
	"An ornate, antique silver hairpin with dangling jade charms",
	"A delicate gold chain woven through a braid",
	"A crown of fresh, dewy cherry blossoms",
	"A long, flowing red silk ribbon tied in a loose bow",
	"An intricate jade hair comb with phoenix carvings",
	"A traditional Phoenix coronet (Fengguan) with elaborate details",
	"Delicate, shimmering butterfly-shaped hairpins",
	"A simple, elegant velvet headband",
}

var Backgrounds = []string{
	"City Wall",
	"Ancient Temple",
	"Bamboo Forest",
	"Royal Palace",
	"Modern City Street",
	"Sun-drenched Beach at Golden Hour",
	"Neon-soaked Tokyo Alleyway",
	"Opulent Baroque Library",
	"Minimalist Concrete Studio",
	"Misty Scottish Highlands",
	"Abandoned Greenhouse Overgrown with Ivy",
	"Serene Japanese Zen Garden",
}

var BackgroundElements = []string{
	"Soldiers and swirling black smoke",
	"Floating lanterns in a night sky",
	"Intricate palace architecture",
	"Misty mountains and a serene lake",
	"Neon-lit cyberpunk alleyway",
	"Blossoming cherry trees",
	"Minimalist studio backdrop",
	"Swirling autumn leaves",
	"Gentle falling snow",
	"Low-hanging fog over water",
	"Crumbling ancient ruins",
	"A cascade of flower petals",
}

var GazeOptions = []string{
	"Looking at camera",
	"Looking away",
	"Eyes closed",
	"Looking over the shoulder",
	"A shy glance downwards",
	"A direct, intense stare",
	"A dreamy, unfocused look into the distance",
	"A joyful look upwards",
	"A melancholic look out a window",
	"Reflected in a mirror",
}

var LightingPresets = []string{
	"Very soft and realistic",
	"Dramatic Rembrandt lighting",
	"Backlit silhouette with rim lighting",
	"Flat, even studio lighting",
	"Dappled sunlight through leaves",
	"Blue hour twilight",
	"Cinematic split lighting",
	"Volumetric light rays in a dusty room",
	"Soft glow from a paper lantern",
	"Flickering candlelight",
	"God rays breaking through clouds",
	"Warm, cozy fireplace glow",
}

var ShadowIntensities = []string{
	"soft, barely-there shadows",
	"natural, medium-contrast shadows",
	"deep, dramatic shadows",
	"long shadows stretching across the frame",
	"crisp, hard-edged shadows",
}

var HighlightBlooms = []string{
	"no visible bloom",
	"a subtle highlight bloom on skin and fabric",
	"a soft, dreamy bloom around light sources",
	"a strong cinematic bloom with haloed highlights",
}

// ShotPose pairs a short display name with the canonical prompt text emitted
// verbatim when the pose is selected.
type ShotPose struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CustomPose is the sentinel shot pose; it switches the compiler to the
// free-form action/gaze branch.
const CustomPose = "Custom Pose"

var ShotPoses = []ShotPose{
	{Name: CustomPose, Value: CustomPose},
	{Name: "1. Extreme Close-up Lips/Cheek", Value: "extreme close-up of lips + cheekbone with blurred hand partially covering (85mm, f/1.8, razor-thin DOF)"},
	{Name: "2. Tight Crop on Eyes", Value: "tight crop on eyes looking into lens with reflection of light strip visible (85mm, f/2.0)"},
	{Name: "3. B&W Close Portrait", Value: "black & white close portrait resting chin on fist, face filling frame (50mm, f/2.2)"},
	{Name: "4. Over-Shoulder Shot", Value: "over-shoulder shot, blurred foreground fabric curtain framing half face (85mm, f/2.0)"},
	{Name: "5. Seated Sideways", Value: "half-body seated sideways on low cube, head turned sharply away, blurred foreground (35mm, f/4.5)"},
	{Name: "6. Leaning Against Wall", Value: "full body shot leaning casually against a graffiti-covered brick wall, one leg crossed (35mm, f/4.0, urban editorial)"},
	{Name: "7. Mid-air Jump", Value: "dynamic full-body shot captured mid-air during a joyful jump at the beach (24mm, f/5.6, high shutter speed)"},
	{Name: "8. Lying in Flowers", Value: "overhead shot lying down in a field of wildflowers, eyes closed (50mm, f/2.8, dreamy)"},
	{Name: "9. Power Stance", Value: "low-angle full body shot, standing with legs apart in a powerful stance, looking down at camera (24mm, f/8.0, heroic)"},
	{Name: "10. Candid Laughing", Value: "candid half-body shot, laughing genuinely while turning away from the camera (50mm, f/2.0, natural light)"},
	{Name: "11. Silhouette at Sunset", Value: "profile silhouette against a vibrant sunset over the ocean (100mm, f/11, dramatic)"},
	{Name: "12. Dancing with Fabric", Value: "full body shot, dynamically interacting with a large piece of flowing silk fabric (24-70mm, f/4.0, expressive)"},
	{Name: "13. Elegant Three-Quarter Turn", Value: "elegant three-quarter turn, looking over shoulder at camera (85mm, f/2.2, soft light)"},
	{Name: "14. Misty Alley Glance", Value: "walking away down a misty alley, turning head back for a final glance (50mm, f/2.0, atmospheric)"},
	{Name: "15. Rooftop Dynamic", Value: "a dynamic shot, her dress caught in the wind on a rooftop (24mm, f/8.0, wide-angle)"},
}

var CameraModels = []string{
	"Canon EOS R5",
	"Sony Alpha a7R IV",
	"Nikon Z7 II",
	"Fujifilm GFX 100S",
	"Hasselblad X1D II 50C",
	"Leica M11",
	"Phase One XF IQ4",
	"Pentax 67 (Film)",
	"Contax T2 (Film)",
	"Arri Alexa LF (Cinema)",
}

var LensTypes = []string{
	"50mm f/1.8 (Standard Prime)",
	"85mm f/1.4 (Portrait Prime)",
	"35mm f/1.4 (Wide Prime)",
	"100mm f/2.8 (Macro)",
	"24-70mm f/2.8 (Standard Zoom)",
	"70-200mm f/2.8 (Telephoto Zoom)",
	"135mm f/2.0 (Telephoto Prime)",
	"Petzval 85mm f/2.2 (Art lens with swirly bokeh)",
	"Anamorphic 50mm f/1.8 (Cinematic wide-screen look)",
	"Helios 44-2 58mm f/2 (Vintage, swirly bokeh)",
}

var SkinDetails = []string{
	"Glowing porcelain skin with a few faint, natural freckles across the nose",
	"Soft, dewy skin with visible, realistic pores and a subtle beauty mark above the lip",
	"Sun-kissed skin with a healthy, natural sheen and light, believable tan lines",
	"Clear, hydrated skin with subtle texture and natural rosy cheeks",
	"Realistic skin with tiny imperfections, like a small healed scar on the chin",
	"Ethereal, almost translucent skin that seems to glow from within",
}

var FashionAesthetics = []string{
	"Meticulously detailed fashion aesthetics",
	"Dark Academia, with tweed, vintage elements, and a scholarly feel",
	"Cottagecore, focusing on rustic, romantic, and pastoral styles",
	"Royalcore, inspired by the opulent style of historical European royalty",
	"Minimalist chic, with clean lines, neutral tones, and a focus on form",
	"Ethereal and dreamy, using flowing, translucent fabrics and iridescent colors",
	"Vintage Hollywood glamour from the 1940s, with tailored suits and elegant gowns",
	"Streetwear luxe, combining casual comfort with high-end designer pieces",
}

var AspectRatios = []string{"16:9", "9:16", "4:3", "3:4", "1:1", "21:9"}

package hugging_face

const (
	maxTokens   = 450
	temperature = 0.35
)

// foodPrompt is sent verbatim with every photo; replies are stored as-is.
const foodPrompt = `Analyze this food image carefully.
Describe visible food items, approximate portion sizes (small/medium/large or rough grams if possible),
cooking method if visible, and estimate total calories.
Use realistic nutritional knowledge (USDA-style averages). Break down by item if multiple foods are present.
Be conservative and realistic in your estimates.
The output style should be:
🍽️Recognized: Nasi
Lemak with fried chicken, cucumber, egg & sambal
💪Protein: 38g 🥔Carbs: 92g 🧈Fat: 45g 🍬Sugar: 10g
🔥Calories: 850 kcal
and provide some tips at the end for the user.`

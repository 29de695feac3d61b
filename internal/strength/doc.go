// Package strength estimates password strength.
//
// The estimate starts from an upper bound, length * log2(alphabet size),
// and then corrects it for structure:
//
//   - a match against a list of known-weak passwords costs 45 bits
//   - an all-digit candidate of 6 or more characters costs 25 bits
//   - runs such as "aaa", "ababab" or "abcabc" cost 12, 10 and 8 bits
//   - each distinct 4-character alphabet run ("abcd", "3456") costs 10 bits
//
// Candidates of 12 or more characters gain 8 bits and candidates mixing
// lowercase, uppercase, digits and symbols gain 10 bits. The result is
// clamped to [0, 200] and mapped onto five buckets.
//
// Pattern rules run on the lower-cased candidate and use fixed-width
// window scans, so scoring is linear in the candidate length.
//
// # Usage
//
//	res := strength.Score("correct horse battery staple")
//	fmt.Println(res.Label(), res.RoundedBits())
//
//	// Custom reference list
//	rl, err := strength.LoadReferenceList("weak.txt")
//	if err != nil {
//	    return err
//	}
//	est := strength.NewEstimator(strength.WithReferenceList(rl))
//	res = est.Score(candidate)
package strength

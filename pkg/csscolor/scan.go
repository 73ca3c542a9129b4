package csscolor

import "strconv"

// scanNumbers collects the numeric arguments of a color function from left to
// right. A token is a run of digits and dots, optionally ended by '%', which
// divides the value by 100. Its value is the longest prefix that is a valid
// number, so "1.2.3" reads as 1.2. Everything else separates tokens, so
// "rgb(1,2,3)" and "rgb(1 2 3)" scan the same.
func scanNumbers(s string) []float64 {
	var nums []float64
	for i := 0; i < len(s); {
		if !startsNumber(s, i) {
			i++
			continue
		}

		j, end, dot := i, -1, false
		for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
			if s[j] == '.' {
				if dot && end < 0 {
					end = j
				}
				dot = true
			}
			j++
		}
		if end < 0 {
			end = j
		}

		v, err := strconv.ParseFloat(s[i:end], 64)
		if err != nil {
			v = 0
		}
		if j < len(s) && s[j] == '%' {
			v /= 100
			j++
		}
		nums = append(nums, v)
		i = j
	}
	return nums
}

func startsNumber(s string, i int) bool {
	if isDigit(s[i]) {
		return true
	}
	return s[i] == '.' && i+1 < len(s) && isDigit(s[i+1])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

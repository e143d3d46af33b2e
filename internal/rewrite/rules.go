package rewrite

// Rules returns the fixed rule set of spec §4.3, transcribed from the
// source rewriter's table verbatim (patterns, directions and conditions
// match it exactly; only names are unchanged because they double as the
// explanation's rewrite_name field).
func Rules() []*Rule {
	return []*Rule{
		rule("eq-add", "(eq ?a (add ?b ?c))", "(eq (sub ?a ?c) ?b)"),
		rule("eq-sub", "(eq ?a (sub ?b ?c))", "(eq (add ?a ?c) ?b)"),
		rule("eq-mul", "(eq ?a (mul ?b ?c))", "(eq (div ?a ?c) ?b)", IsNotZero("c")),
		rule("eq-div", "(eq ?a (div ?b ?c))", "(eq (mul ?a ?c) ?b)", IsNotZero("c")),
		rule("eq-sub-zero", "(eq ?a ?b)", "(eq (sub ?a ?b) 0)", IsNotZero("b")),
		rule("eq-div-one", "(eq ?a ?b)", "(eq (div ?a ?b) 1)", IsNotZero("b"), IsNotOne("b")),

		rule("le-sub", "(le ?a (sub ?b ?c))", "(le (add ?a ?c) ?b)"),
		rule("le-add", "(le ?a (add ?b ?c))", "(le (sub ?a ?c) ?b)"),
		rule("le-mul", "(le ?a (mul ?b ?c))", "(le (div ?a ?c) ?b)", IsNotZero("c")),
		rule("le-div", "(le ?a (div ?b ?c))", "(le (mul ?a ?c) ?b)", IsNotZero("c")),
		rule("le-sub-zero", "(le ?a ?b)", "(le (sub ?a ?b) 0)", IsNotZero("b")),
		rule("le-div-one", "(le ?a ?b)", "(le (div ?a ?b) 1)", IsNotZero("b"), IsNotOne("b")),

		rule("add-comm", "(add ?a ?b)", "(add ?b ?a)"),
		rule("add-assoc", "(add (add ?a ?b) ?c)", "(add ?a (add ?b ?c))"),
		rule("mul-comm", "(mul ?a ?b)", "(mul ?b ?a)"),
		rule("mul-assoc", "(mul (mul ?a ?b) ?c)", "(mul ?a (mul ?b ?c))"),
		rule("add-sub", "(add ?a (sub ?b ?c))", "(sub (add ?a ?b) ?c)"),
		rule("add-mul", "(mul (add ?a ?b) ?c)", "(add (mul ?a ?c) (mul ?b ?c))"),

		rule("sub-mul-left", "(sub (mul ?a ?b) (mul ?a ?c))", "(mul ?a (sub ?b ?c))"),
		rule("sub-mul-right", "(sub (mul ?a ?b) (mul ?c ?b))", "(mul (sub ?a ?c) ?b)"),
		rule("sub-mul-same-right", "(sub ?a (mul ?b ?a))", "(mul ?a (sub 1 ?b))"),
		rule("sub-mul-same-left", "(sub (mul ?a ?b) ?a)", "(mul ?a (sub ?b 1))"),

		rule("mul-div", "(mul ?a (div ?b ?c))", "(div (mul ?a ?b) ?c)", IsNotZero("c")),
		rule("div-add", "(div (add ?a ?b) ?c)", "(add (div ?a ?c) (div ?b ?c))", IsNotZero("c")),
		rule("div-sub", "(div (sub ?a ?b) ?c)", "(sub (div ?a ?c) (div ?b ?c))", IsNotZero("c")),

		rule("pow-add", "(pow ?a (add ?b ?c))", "(mul (pow ?a ?b) (pow ?a ?c))"),
		rule("pow-sub", "(pow ?a (sub ?b ?c))", "(div (pow ?a ?b) (pow ?a ?c))", IsNotZero("a")),
		rule("div-pow", "(div ?a (pow ?b ?c))", "(mul ?a (pow ?b (neg ?c)))", IsGtZero("b")),
		rule("div-pow-same-right", "(div ?a (pow ?a ?b))", "(pow ?a (sub 1 ?b))"),
		rule("div-pow-same-left", "(div (pow ?a ?b) ?a)", "(pow ?a (sub ?b 1))"),

		rule("sqrt_eq_rpow", "(sqrt ?a)", "(pow ?a 0.5)"),

		rule("mul-exp", "(mul (exp ?a) (exp ?b))", "(exp (add ?a ?b))"),
		rule("div-exp", "(div (exp ?a) (exp ?b))", "(exp (sub ?a ?b))"),
		rule("pow-exp", "(pow (exp ?a) ?b)", "(exp (mul ?a ?b))"),

		rule("log-mul", "(log (mul ?a ?b))", "(add (log ?a) (log ?b))", IsGtZero("a"), IsGtZero("b")),
		rule("log-div", "(log (div ?a ?b))", "(sub (log ?a) (log ?b))", IsGtZero("a"), IsGtZero("b")),
		rule("log-exp", "(log (exp ?a))", "?a"),

		rule("eq-log", "(eq ?a ?b)", "(eq (log ?a) (log ?b))",
			IsGtZero("a"), IsGtZero("b"), NotHasLog("a"), NotHasLog("b")),
		rule("le-log", "(le ?a ?b)", "(le (log ?a) (log ?b))",
			IsGtZero("a"), IsGtZero("b"), NotHasLog("a"), NotHasLog("b")),

		rule("map-objFun-log", "(objFun ?a)", "(objFun (log ?a))", IsGtZero("a"), NotHasLog("a")),
	}
}

func rule(name, left, right string, conditions ...Condition) *Rule {
	return &Rule{Name: name, Left: mustPattern(left), Right: mustPattern(right), Conditions: conditions}
}

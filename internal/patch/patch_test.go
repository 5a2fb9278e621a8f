package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// BuildReplacement — template rendering
// ---------------------------------------------------------------------------

func TestBuildReplacementWorkedExample(t *testing.T) {
	sites := Scan(swapDoc, []Kind{KindSwapNative})
	require.Len(t, sites, 1)

	params, ok := ExtractParams(sites[0].CallBlock, KindSwapNative)
	require.True(t, ok)

	got := New().BuildReplacement(sites[0], params, "operator")

	want := `        // Generate signature
        bytes memory signature = sigHelper.signSwapNative(
            operatorPrivateKey,
            address(broker),
            DEAL_ID_A,
            pay,
            recipient,
            feeRecipient,
            amount,
            fees,
            operator
        );

        vm.prank(operator);
        broker.swapNative{value: amount}(
            DEAL_ID_A,
            pay,
            recipient,
            feeRecipient,
            amount,
            fees,
            signature
        );`
	assert.Equal(t, want, got)
}

func TestBuildReplacementKeepsOriginalTextVerbatim(t *testing.T) {
	for _, doc := range []string{swapDoc, revertDoc} {
		sites := Scan(doc, AllKinds)
		require.Len(t, sites, 1)
		site := sites[0]

		params, ok := ExtractParams(site.CallBlock, site.Kind)
		require.True(t, ok)

		out := New().BuildReplacement(site, params, ExtractCaller(site.PrankLine))
		assert.Contains(t, out, site.PrankLine, "prank line must survive verbatim")
		assert.Contains(t, out, site.CallBlock, "call block must survive verbatim")
	}
}

func TestBuildReplacementRevertTemplate(t *testing.T) {
	sites := Scan(revertDoc, []Kind{KindRevertNative})
	require.Len(t, sites, 1)

	params, ok := ExtractParams(sites[0].CallBlock, KindRevertNative)
	require.True(t, ok)

	out := New().BuildReplacement(sites[0], params, "user1")
	assert.Contains(t, out, "sigHelper.signRevertNative(")
	assert.Contains(t, out, "// Generate signature")
	assert.True(t, strings.HasSuffix(out, "signature\n        );"))
}

func TestBuildReplacementCustomIdentifiers(t *testing.T) {
	p := &Patcher{
		HelperVar:     "sigUtil",
		KeyVar:        "adminKey",
		BrokerVar:     "swapBroker",
		DefaultCaller: "admin",
	}

	sites := Scan(swapDoc, []Kind{KindSwapNative})
	require.Len(t, sites, 1)
	params, ok := ExtractParams(sites[0].CallBlock, KindSwapNative)
	require.True(t, ok)

	out := p.BuildReplacement(sites[0], params, p.extractCaller(sites[0].PrankLine))
	assert.Contains(t, out, "sigUtil.signSwapNative(")
	assert.Contains(t, out, "adminKey,")
	assert.Contains(t, out, "address(swapBroker),")
}

// ---------------------------------------------------------------------------
// Apply — full-document rewriting
// ---------------------------------------------------------------------------

func TestApplyPatchesConformingSwapSite(t *testing.T) {
	out, rep := New().Apply(swapDoc, []Kind{KindSwapNative})

	assert.Equal(t, 1, rep.Found())
	assert.Equal(t, 1, rep.Patched())
	assert.Equal(t, 0, rep.Skipped())

	want := `    function test_SwapNative() public {
        // Generate signature
        bytes memory signature = sigHelper.signSwapNative(
            operatorPrivateKey,
            address(broker),
            DEAL_ID_A,
            pay,
            recipient,
            feeRecipient,
            amount,
            fees,
            operator
        );

        vm.prank(operator);
        broker.swapNative{value: amount}(
            DEAL_ID_A,
            pay,
            recipient,
            feeRecipient,
            amount,
            fees,
            signature
        );
    }
`
	assert.Equal(t, want, out)
}

func TestApplyIdentityOnShapeMismatch(t *testing.T) {
	doc := `        vm.prank(operator);
        broker.swapNative(DEAL_ID_A, pay, recipient, amount, fees);
`
	out, rep := New().Apply(doc, AllKinds)
	assert.Equal(t, doc, out, "non-conforming site must be left byte-identical")
	assert.Equal(t, 1, rep.Found())
	assert.Equal(t, 1, rep.Skipped())
}

func TestApplyIdentityWhenNoSites(t *testing.T) {
	doc := "contract Foo {\n    uint256 x;\n}\n"
	out, rep := New().Apply(doc, AllKinds)
	assert.Equal(t, doc, out)
	assert.Equal(t, 0, rep.Found())
}

// Already-patched calls carry a trailing signature argument, so their
// arity no longer matches and they are skipped. Re-running the patcher
// over its own output is not a supported workflow; this only pins down
// that such input degrades to a no-op instead of corrupting the file.
func TestApplySkipsAlreadyPatchedInput(t *testing.T) {
	once, rep := New().Apply(swapDoc, []Kind{KindSwapNative})
	require.Equal(t, 1, rep.Patched())

	twice, rep2 := New().Apply(once, []Kind{KindSwapNative})
	assert.Equal(t, once, twice)
	assert.Equal(t, 0, rep2.Patched())
}

func TestApplyMultipleSitesIndependently(t *testing.T) {
	doc := swapDoc + `
    function test_BadShape() public {
        vm.prank(operator);
        broker.revertNative(DEAL_ID_B, payback, fees);
    }
` + revertDoc

	out, rep := New().Apply(doc, AllKinds)
	assert.Equal(t, 3, rep.Found())
	assert.Equal(t, 2, rep.Patched())
	assert.Equal(t, 1, rep.Skipped())

	// The malformed middle site survives untouched.
	assert.Contains(t, out, "broker.revertNative(DEAL_ID_B, payback, fees);")
	assert.Contains(t, out, "sigHelper.signSwapNative(")
	assert.Contains(t, out, "sigHelper.signRevertNative(")
}

func TestApplyDefaultCallerFallback(t *testing.T) {
	doc := `        vm.prank(address(this));
        broker.revertNative(DEAL_ID_C, payback, feeRecipient, fees);
`
	out, rep := New().Apply(doc, AllKinds)
	require.Equal(t, 1, rep.Patched())
	assert.Equal(t, "operator", rep.Sites[0].Caller)
	assert.Contains(t, out, "            fees,\n            operator\n")
}

// ---------------------------------------------------------------------------
// Inspect — diagnostics-only mode
// ---------------------------------------------------------------------------

func TestInspectReportsWithoutRewriting(t *testing.T) {
	rep := New().Inspect(swapDoc, AllKinds)
	require.Equal(t, 1, rep.Found())

	s := rep.Sites[0]
	assert.Equal(t, KindSwapNative, s.Kind)
	assert.Equal(t, "operator", s.Caller)
	assert.Equal(t, Params{"DEAL_ID_A", "pay", "recipient", "feeRecipient", "amount", "fees"}, s.Params)
}

func TestInspectFlagsMismatch(t *testing.T) {
	doc := `        vm.prank(operator);
        broker.swapNative(DEAL_ID_A, pay);
`
	rep := New().Inspect(doc, AllKinds)
	require.Equal(t, 1, rep.Found())
	assert.False(t, rep.Sites[0].Patched)
	assert.NotEmpty(t, rep.Sites[0].Reason)
}

// ---------------------------------------------------------------------------
// Kind
// ---------------------------------------------------------------------------

func TestKindString(t *testing.T) {
	assert.Equal(t, "swapNative", KindSwapNative.String())
	assert.Equal(t, "revertNative", KindRevertNative.String())
}

package buildtools

// Shim is the unminified JS bootstrap an embedding page loads to
// instantiate and run a WASM-compiled Contract, then fire a
// "jsaction-ready" event on window.
const Shim = `
(function() {
	if (!window.Go) {
		throw new Error("wasm_exec.js must be loaded before the jsaction bootstrap shim");
	}
	const go = new Go();
	WebAssembly.instantiateStreaming(fetch("contract.wasm"), go.importObject).then(function(result) {
		go.run(result.instance);
		window.dispatchEvent(new CustomEvent("jsaction-ready"));
	});
})();
`
